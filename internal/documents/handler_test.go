package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"dreamer-backend/internal/extract"
	"dreamer-backend/internal/payments"
	"dreamer-backend/internal/pricing"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create docx entry: %v", err)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write docx entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close docx zip: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newUploadRouter(t *testing.T) (*gin.Engine, *fakeStore, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := &Service{
		Store:             store,
		Repo:              repo,
		Payments:          payments.NewMemoryRepo(),
		Pipeline:          extract.NewPipeline(store),
		Pricer:            pricing.Calculator{Tiers: pricing.DefaultTiers(), MinCharge: 50},
		Intents:           &fakeIntents{},
		Currency:          "cny",
		AllowedExtensions: []string{"pdf", "docx"},
	}
	handler := NewHandler(svc, 20<<20, "pk_test_abc")

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, store, repo
}

func TestUploadEndpointQuotesDocx(t *testing.T) {
	router, store, repo := newUploadRouter(t)

	body, contentType := multipartUpload(t, "file", "novel.docx", buildDocx(t, strings.Repeat("字", 500)))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out UploadResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.CharCount != 500 {
		t.Errorf("char_count = %d, want 500", out.CharCount)
	}
	if out.AnalysisCost != 100 || out.Amount != 100 {
		t.Errorf("analysis_cost = %d, amount = %d, want 100", out.AnalysisCost, out.Amount)
	}
	if out.ClientSecret == "" {
		t.Error("client_secret is empty")
	}
	if out.PublishableKey != "pk_test_abc" {
		t.Errorf("publishable_key = %q", out.PublishableKey)
	}
	if out.Currency != "cny" {
		t.Errorf("currency = %q", out.Currency)
	}
	if out.Title != "novel" {
		t.Errorf("title = %q, want novel", out.Title)
	}
	if out.TextContentPath == "" {
		t.Error("text_content_file_path is empty")
	}
	if _, ok := store.objects[out.TextContentPath]; !ok {
		t.Errorf("side-file %s missing from store", out.TextContentPath)
	}
	if _, err := repo.GetByID(req.Context(), out.DocumentID); err != nil {
		t.Errorf("document %s not persisted: %v", out.DocumentID, err)
	}
}

func TestDocumentDetailEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	payRepo := payments.NewMemoryRepo()
	svc := &Service{Repo: repo, Payments: payRepo}
	router := gin.New()
	NewHandler(svc, 20<<20, "pk_test_abc").RegisterRoutes(router)

	created := time.Now().UTC()
	doc := Document{
		ID:               "doc-1",
		FileName:         "novel_ab12cd34.pdf",
		OriginalFilename: "novel.pdf",
		SizeBytes:        2048,
		MimeType:         "application/pdf",
		Title:            "novel",
		CharCount:        500,
		AnalysisCost:     100,
		TextContentKey:   "text/text_content_ab12cd34.txt",
		AnalysisSummary:  "人物分析: 主角弧光完整。",
		CreatedAt:        created,
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	payment := payments.Payment{
		ID:              "pay-1",
		StripePaymentID: "pi_1",
		Amount:          100,
		Currency:        "cny",
		Status:          "succeeded",
		DocumentID:      "doc-1",
		CreatedAt:       created,
	}
	if err := payRepo.Create(context.Background(), payment); err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/documents/doc-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out DetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.DocumentID != "doc-1" || out.AnalysisSummary != doc.AnalysisSummary {
		t.Errorf("detail = %+v", out)
	}
	if len(out.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(out.Payments))
	}
	if out.Payments[0].StripePaymentID != "pi_1" || out.Payments[0].Amount != 100 {
		t.Errorf("payment view = %+v", out.Payments[0])
	}
}

func TestDocumentDetailEndpointNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &Service{Repo: NewMemoryRepo(), Payments: payments.NewMemoryRepo()}
	router := gin.New()
	NewHandler(svc, 20<<20, "pk_test_abc").RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/documents/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Document not found") {
		t.Errorf("body = %s", resp.Body.String())
	}
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	router, _, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "No file provided") {
		t.Errorf("body = %s", resp.Body.String())
	}
}

func TestUploadEndpointRejectsTxt(t *testing.T) {
	router, store, _ := newUploadRouter(t)

	body, contentType := multipartUpload(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Only PDF and DOCX") {
		t.Errorf("body = %s", resp.Body.String())
	}
	if len(store.objects) != 0 {
		t.Errorf("store has %d objects after rejected upload", len(store.objects))
	}
}

func TestUploadEndpointUnparsableDocument(t *testing.T) {
	router, store, _ := newUploadRouter(t)

	body, contentType := multipartUpload(t, "file", "broken.pdf", []byte("%PDF-garbage"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Document processing failed") {
		t.Errorf("body = %s", resp.Body.String())
	}
	if len(store.objects) != 0 {
		t.Errorf("raw file not cleaned up: %d objects remain", len(store.objects))
	}
}
