package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNoLatexContent rejects template application on a resume that was
// never converted to LaTeX.
var ErrNoLatexContent = errors.New("resume has no LaTeX content to apply a template to")

// TemplateGateway is the outbound conversion surface the resume service
// depends on. Every method is a single synchronous upstream call with no
// retries; the caller decides whether a failure propagates or is
// suppressed.
type TemplateGateway interface {
	ConvertPDFToLatex(ctx context.Context, pdfBytes []byte) (string, error)
	BlendWithTemplate(ctx context.Context, existingLatex, templateID, originalName string) (string, error)
	CompileLatexToPDF(ctx context.Context, latexContent string) ([]byte, error)
}

// BestEffort is the explicit "suppress" policy for upstream calls: it
// logs the failure and degrades to the zero value so the surrounding
// create/update keeps going. Call sites that must surface upstream
// failures handle the error themselves instead.
func BestEffort[T any](v T, err error) T {
	if err != nil {
		log.Printf("Upstream call skipped: %v", err)
		var zero T
		return zero
	}
	return v
}

type ResumeService struct {
	DB      *gorm.DB
	Gateway TemplateGateway
}

func NewResumeService(db *gorm.DB, gateway TemplateGateway) *ResumeService {
	return &ResumeService{DB: db, Gateway: gateway}
}

func (s *ResumeService) List() ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.Order("created_at desc").Find(&resumes).Error
	return resumes, err
}

func (s *ResumeService) Get(id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) Create(req *dtos.ResumeCreateRequest) (*models.Resume, error) {
	resume := &models.Resume{
		Name:           req.Name,
		IsMaster:       req.IsMaster,
		MasterResumeID: req.MasterResumeID,
		Content:        datatypes.JSON(req.Content),
		VersionHistory: datatypes.JSON("[]"),
	}
	if err := s.DB.Create(resume).Error; err != nil {
		return nil, err
	}
	return resume, nil
}

// Update applies field edits. A content change first appends the
// pre-image of the current content to the version history, so history
// element i is what was live immediately before the i-th update. Empty
// prior content is not recorded.
func (s *ResumeService) Update(id uint, req *dtos.ResumeUpdateRequest) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Content != nil {
		if !contentEmpty(resume.Content) {
			history, err := appendVersion(resume.VersionHistory, resume.Content)
			if err != nil {
				return nil, err
			}
			updates["version_history"] = history
		}
		updates["content"] = datatypes.JSON(req.Content)
	}
	if len(updates) == 0 {
		return &resume, nil
	}
	if err := s.DB.Model(&resume).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) Delete(id uint) error {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(&resume).Error
}

// SetMaster makes the target the single master resume: clear any other
// master, then set the flag, both inside one transaction so no reader
// ever observes two masters. Calling it twice is a no-op for the master
// set's cardinality.
func (s *ResumeService) SetMaster(id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resume{}).
			Where("is_master = ? AND id <> ?", true, id).
			Update("is_master", false).Error; err != nil {
			return err
		}
		return tx.Model(&resume).Update("is_master", true).Error
	})
	if err != nil {
		return nil, err
	}
	resume.IsMaster = true
	return &resume, nil
}

// UnsetMaster clears the flag unconditionally.
func (s *ResumeService) UnsetMaster(id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&resume).Update("is_master", false).Error; err != nil {
		return nil, err
	}
	resume.IsMaster = false
	return &resume, nil
}

// SetLatex stores derived LaTeX text independently of content updates.
func (s *ResumeService) SetLatex(id uint, latexContent string) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.First(&resume, id).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&resume).Update("latex_content", latexContent).Error; err != nil {
		return nil, err
	}
	resume.LatexContent = latexContent
	return &resume, nil
}

// SaveUpload creates a resume row from an uploaded file: placeholder
// content, the original bytes and MIME type, and, for PDFs, a
// best-effort LaTeX conversion. A conversion failure never fails the
// upload.
func (s *ResumeService) SaveUpload(ctx context.Context, filename string, data []byte, mimeType string) (*models.Resume, error) {
	name := strings.TrimSuffix(filename, "."+extensionOf(filename))
	placeholder, err := json.Marshal(map[string]interface{}{
		"name":       name,
		"email":      "",
		"summary":    "",
		"experience": []interface{}{},
		"skills":     []interface{}{},
		"education":  []interface{}{},
	})
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		Name:           name,
		Content:        datatypes.JSON(placeholder),
		VersionHistory: datatypes.JSON("[]"),
		FileData:       data,
		FileType:       mimeType,
	}
	if strings.Contains(mimeType, "pdf") {
		resume.LatexContent = BestEffort(s.Gateway.ConvertPDFToLatex(ctx, data))
	}
	if err := s.DB.Create(resume).Error; err != nil {
		return nil, err
	}
	return resume, nil
}

// DeriveFromTemplate blends the resume's LaTeX with a bundled template
// and saves the result as a new derived resume. Blending failures
// propagate; compilation of the blended LaTeX to PDF is best-effort and
// a compiler outage only leaves the derived resume without file bytes.
func (s *ResumeService) DeriveFromTemplate(ctx context.Context, id uint, templateID string) (*models.Resume, error) {
	var original models.Resume
	if err := s.DB.First(&original, id).Error; err != nil {
		return nil, err
	}
	if strings.TrimSpace(original.LatexContent) == "" {
		return nil, ErrNoLatexContent
	}

	blended, err := s.Gateway.BlendWithTemplate(ctx, original.LatexContent, templateID, original.Name)
	if err != nil {
		return nil, err
	}

	pdfBytes := BestEffort(s.Gateway.CompileLatexToPDF(ctx, blended))

	derived := &models.Resume{
		// Collisions on the random suffix are accepted; names are labels,
		// not identifiers.
		Name:           fmt.Sprintf("%s-%03d", original.Name, rand.IntN(1000)),
		IsMaster:       false,
		MasterResumeID: &original.ID,
		Content:        original.Content,
		VersionHistory: datatypes.JSON("[]"),
		LatexContent:   blended,
	}
	if len(pdfBytes) > 0 {
		derived.FileData = pdfBytes
		derived.FileType = "application/pdf"
	}
	if err := s.DB.Create(derived).Error; err != nil {
		return nil, err
	}
	return derived, nil
}

type versionEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Content   json.RawMessage `json:"content"`
}

func appendVersion(history, preImage datatypes.JSON) (datatypes.JSON, error) {
	var entries []versionEntry
	if len(history) > 0 {
		if err := json.Unmarshal(history, &entries); err != nil {
			return nil, fmt.Errorf("corrupt version history: %w", err)
		}
	}
	entries = append(entries, versionEntry{
		Timestamp: time.Now(),
		Content:   json.RawMessage(preImage),
	})
	out, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

func contentEmpty(content datatypes.JSON) bool {
	trimmed := strings.TrimSpace(string(content))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}

func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
