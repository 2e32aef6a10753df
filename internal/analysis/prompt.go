package analysis

import "strings"

const (
	sectionCharacter   = "人物分析"
	sectionPlot        = "情节分析"
	sectionThematic    = "主题分析"
	sectionReadability = "可读性评估"
	sectionSentiment   = "情感分析"
	sectionStyle       = "风格和一致性"
)

var allSections = []string{
	sectionCharacter,
	sectionPlot,
	sectionThematic,
	sectionReadability,
	sectionSentiment,
	sectionStyle,
}

const promptHeader = "你是一位专业的文档分析专家。请用中文分析这篇文档，确保每个部分都提供详细的分析（至少2-3段）：\n\n摘要：\n[请用3-5句话简明扼要地总结文档的关键点和主要信息]\n"

const promptGuidelines = "\n分析指南：\n" +
	"- 每个部分都必须提供详细、有实质内容的分析\n" +
	"- 保持格式统一，使用适当的中文标点\n" +
	"- 避免使用数字编号或序号\n" +
	"- 每个部分都应该包含有意义的内容\n" +
	"- 使用恰当的专业术语和分析方法\n" +
	"- 分析要具体且有见地，避免泛泛而谈\n"

// SelectedSections returns the section headings enabled by opts, all of them
// when no flag is set.
func SelectedSections(opts Options) []string {
	if opts.none() {
		return allSections
	}
	var sections []string
	if opts.CharacterAnalysis {
		sections = append(sections, sectionCharacter)
	}
	if opts.PlotAnalysis {
		sections = append(sections, sectionPlot)
	}
	if opts.ThematicAnalysis {
		sections = append(sections, sectionThematic)
	}
	if opts.ReadabilityAssessment {
		sections = append(sections, sectionReadability)
	}
	if opts.SentimentAnalysis {
		sections = append(sections, sectionSentiment)
	}
	if opts.StyleConsistency {
		sections = append(sections, sectionStyle)
	}
	return sections
}

// BuildSystemPrompt assembles the system instruction for the selected
// sections.
func BuildSystemPrompt(opts Options) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, section := range SelectedSections(opts) {
		b.WriteString("\n")
		b.WriteString(section)
		b.WriteString("：\n[详细分析")
		b.WriteString(section)
		b.WriteString("的内容，至少2-3段]\n")
	}
	b.WriteString(promptGuidelines)
	return b.String()
}

// CleanSummary strips leading "N." enumeration prefixes the model sometimes
// emits despite the prompt asking it not to.
func CleanSummary(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 2 && trimmed[0] >= '1' && trimmed[0] <= '9' && trimmed[1] == '.' {
			lines[i] = strings.TrimSpace(trimmed[2:])
		}
	}
	return strings.Join(lines, "\n")
}
