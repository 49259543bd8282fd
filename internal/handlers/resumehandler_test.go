package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"github.com/jobvibe/jobvibe-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	latex    string
	latexErr error
	blended  string
	blendErr error
	pdf      []byte
}

func (s *stubGateway) ConvertPDFToLatex(ctx context.Context, pdfBytes []byte) (string, error) {
	return s.latex, s.latexErr
}

func (s *stubGateway) BlendWithTemplate(ctx context.Context, existingLatex, templateID, originalName string) (string, error) {
	return s.blended, s.blendErr
}

func (s *stubGateway) CompileLatexToPDF(ctx context.Context, latexContent string) ([]byte, error) {
	if s.pdf == nil {
		return nil, errors.New("no compiler available")
	}
	return s.pdf, nil
}

func newResumeRouter(t *testing.T, gw services.TemplateGateway) *gin.Engine {
	db := openTestDB(t, &models.Resume{})
	h := NewResumeHandler(
		services.NewResumeService(db, gw),
		services.NewLatexService(nil, time.Second),
	)

	r := gin.New()
	r.GET("/api/resumes", h.List)
	r.POST("/api/resumes", h.Create)
	r.POST("/api/resumes/upload", h.Upload)
	r.GET("/api/resumes/templates/list", h.Templates)
	r.GET("/api/resumes/templates/:id/preview", h.TemplatePreview)
	r.GET("/api/resumes/:id", h.Get)
	r.PATCH("/api/resumes/:id", h.Update)
	r.DELETE("/api/resumes/:id", h.Delete)
	r.GET("/api/resumes/:id/file", h.File)
	r.GET("/api/resumes/:id/latex", h.GetLatex)
	r.PUT("/api/resumes/:id/latex", h.PutLatex)
	r.POST("/api/resumes/:id/set-master", h.SetMaster)
	r.POST("/api/resumes/:id/unset-master", h.UnsetMaster)
	r.POST("/api/resumes/:id/apply-template", h.ApplyTemplate)
	return r
}

func uploadFile(t *testing.T, r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resumes/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResumeUploadRoundTrip(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{latex: `\documentclass{article}\begin{document}x\end{document}`})

	original := []byte("%PDF-1.4 pretend resume bytes")
	w := uploadFile(t, r, "jane-doe.pdf", original)
	requireStatus(t, w, http.StatusCreated)

	var created models.Resume
	decodeBody(t, w, &created)
	assert.Equal(t, "jane-doe", created.Name)
	assert.Equal(t, "application/pdf", created.FileType)
	assert.NotEmpty(t, created.LatexContent)

	// The stored bytes come back untouched with the original MIME type.
	fileReq := httptest.NewRequest(http.MethodGet, "/api/resumes/1/file", nil)
	fileResp := httptest.NewRecorder()
	r.ServeHTTP(fileResp, fileReq)
	requireStatus(t, fileResp, http.StatusOK)
	assert.Equal(t, "application/pdf", fileResp.Header().Get("Content-Type"))
	assert.Equal(t, original, fileResp.Body.Bytes())
}

func TestResumeUploadRejectsUnsupportedType(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	w := uploadFile(t, r, "resume.txt", []byte("plain text resume"))
	requireStatus(t, w, http.StatusBadRequest)

	w = uploadFile(t, r, "resume", []byte("no extension at all"))
	requireStatus(t, w, http.StatusBadRequest)
}

func TestResumeFileMissing(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	w := doJSON(t, r, http.MethodPost, "/api/resumes", gin.H{
		"name":    "Typed In",
		"content": gin.H{"name": "Typed In"},
	})
	requireStatus(t, w, http.StatusCreated)

	fileReq := httptest.NewRequest(http.MethodGet, "/api/resumes/1/file", nil)
	fileResp := httptest.NewRecorder()
	r.ServeHTTP(fileResp, fileReq)
	requireStatus(t, fileResp, http.StatusNotFound)
}

func TestResumeMasterEndpoints(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	for _, name := range []string{"General", "Backend Focused"} {
		w := doJSON(t, r, http.MethodPost, "/api/resumes", gin.H{
			"name":    name,
			"content": gin.H{"name": name},
		})
		requireStatus(t, w, http.StatusCreated)
	}

	requireStatus(t, doJSON(t, r, http.MethodPost, "/api/resumes/1/set-master", nil), http.StatusOK)
	requireStatus(t, doJSON(t, r, http.MethodPost, "/api/resumes/2/set-master", nil), http.StatusOK)

	w := doJSON(t, r, http.MethodGet, "/api/resumes", nil)
	requireStatus(t, w, http.StatusOK)
	var listed []models.Resume
	decodeBody(t, w, &listed)
	masters := 0
	for _, resume := range listed {
		if resume.IsMaster {
			masters++
			assert.Equal(t, uint(2), resume.ID)
		}
	}
	assert.Equal(t, 1, masters, "set-master leaves exactly one master")

	requireStatus(t, doJSON(t, r, http.MethodPost, "/api/resumes/2/unset-master", nil), http.StatusOK)
	requireStatus(t, doJSON(t, r, http.MethodPost, "/api/resumes/99/set-master", nil), http.StatusNotFound)
}

func TestResumeLatexEndpoints(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	w := doJSON(t, r, http.MethodPost, "/api/resumes", gin.H{
		"name":    "General",
		"content": gin.H{"name": "General"},
	})
	requireStatus(t, w, http.StatusCreated)

	// No LaTeX yet.
	requireStatus(t, doJSON(t, r, http.MethodGet, "/api/resumes/1/latex", nil), http.StatusNotFound)

	latex := `\documentclass{article}\begin{document}hand written\end{document}`
	requireStatus(t, doJSON(t, r, http.MethodPut, "/api/resumes/1/latex", gin.H{
		"latex_content": latex,
	}), http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/resumes/1/latex", nil)
	requireStatus(t, w, http.StatusOK)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, latex, body["latex_content"])
}

func TestResumeApplyTemplate(t *testing.T) {
	gw := &stubGateway{
		blended: `\documentclass{article}\begin{document}blended\end{document}`,
		pdf:     []byte("%PDF-1.4 derived"),
	}
	r := newResumeRouter(t, gw)

	w := doJSON(t, r, http.MethodPost, "/api/resumes", gin.H{
		"name":    "General",
		"content": gin.H{"name": "General"},
	})
	requireStatus(t, w, http.StatusCreated)

	// Without LaTeX content the derivation is a client error.
	requireStatus(t, doJSON(t, r, http.MethodPost, "/api/resumes/1/apply-template", gin.H{
		"template_id": "template-1",
	}), http.StatusBadRequest)

	requireStatus(t, doJSON(t, r, http.MethodPut, "/api/resumes/1/latex", gin.H{
		"latex_content": `\documentclass{article}\begin{document}orig\end{document}`,
	}), http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/resumes/1/apply-template", gin.H{
		"template_id": "template-1",
	})
	requireStatus(t, w, http.StatusCreated)

	var derived models.Resume
	decodeBody(t, w, &derived)
	require.NotNil(t, derived.MasterResumeID)
	assert.Equal(t, uint(1), *derived.MasterResumeID)
	assert.Regexp(t, `^General-\d{3}$`, derived.Name)
	assert.Equal(t, gw.blended, derived.LatexContent)
}

func TestResumeTemplateList(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	w := doJSON(t, r, http.MethodGet, "/api/resumes/templates/list", nil)
	requireStatus(t, w, http.StatusOK)

	var infos []dtos.TemplateInfo
	decodeBody(t, w, &infos)
	require.Len(t, infos, 3)
	assert.Equal(t, "template-1", infos[0].ID)
}

func TestResumeTemplatePreviewUnknown(t *testing.T) {
	r := newResumeRouter(t, &stubGateway{})

	w := doJSON(t, r, http.MethodGet, "/api/resumes/templates/template-99/preview", nil)
	requireStatus(t, w, http.StatusNotFound)
}
