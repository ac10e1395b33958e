package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/apierror"
	"github.com/yourusername/cvmatch-api/internal/middleware"
	"github.com/yourusername/cvmatch-api/internal/model"
	"github.com/yourusername/cvmatch-api/internal/service"
)

// TextExtractor pulls plain text from an uploaded document
type TextExtractor interface {
	ExtractText(filename string, data []byte) (string, error)
}

// CVRenderer lays out a résumé as PDF bytes
type CVRenderer interface {
	Render(cv *model.CVData) ([]byte, error)
}

const defaultFeedback = "Analiz tamamlandı."

type CVHandler struct {
	extractor   TextExtractor
	optimizer   service.CVOptimizer
	renderer    CVRenderer
	jobs        service.JobSearcher
	maxFileSize int64
	defaultCity string
}

func NewCVHandler(
	extractor TextExtractor,
	optimizer service.CVOptimizer,
	renderer CVRenderer,
	jobs service.JobSearcher,
	maxFileSize int64,
	defaultCity string,
) *CVHandler {
	return &CVHandler{
		extractor:   extractor,
		optimizer:   optimizer,
		renderer:    renderer,
		jobs:        jobs,
		maxFileSize: maxFileSize,
		defaultCity: defaultCity,
	}
}

// Optimize handles POST /api/v1/optimize
// Extracts, restructures and re-renders the résumé without searching jobs
func (h *CVHandler) Optimize(c *gin.Context) {
	start := time.Now()

	result, ok := h.process(c)
	if !ok {
		return
	}

	log.Info().Dur("total", time.Since(start)).Msg("Résumé optimization complete")
	c.JSON(http.StatusOK, result)
}

// AnalyzeAndMatch handles POST /api/v1/analyze-and-match
// Runs the optimization pipeline, then searches jobs with the extracted skills
func (h *CVHandler) AnalyzeAndMatch(c *gin.Context) {
	start := time.Now()

	city := strings.TrimSpace(c.PostForm("city"))
	if city == "" {
		city = h.defaultCity
	}

	result, ok := h.process(c)
	if !ok {
		return
	}

	skills := result.OptimizedCV.AllSkills()
	log.Info().Str("city", city).Int("skills", len(skills)).Msg("Step 4: searching job postings")

	matches := h.searchJobs(c.Request.Context(), skills, city)
	log.Info().Int("jobs", len(matches)).Dur("total", time.Since(start)).Msg("Analyze and match complete")

	c.JSON(http.StatusOK, model.AnalyzeResponse{
		OptimizeResponse: *result,
		JobMatches:       matches,
	})
}

// searchJobs never fails the request; provider errors yield an empty list
func (h *CVHandler) searchJobs(ctx context.Context, skills []string, city string) []model.JobMatch {
	matches, err := h.jobs.SearchJobs(ctx, skills, city)
	if err != nil {
		log.Warn().Err(err).Str("city", city).Msg("Job search failed, returning no matches")
		return []model.JobMatch{}
	}
	if matches == nil {
		return []model.JobMatch{}
	}
	return matches
}

// process validates the upload and runs extract → optimize → render.
// On failure it has already written the error response.
func (h *CVHandler) process(c *gin.Context) (*model.OptimizeResponse, bool) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return nil, false
	}

	log.Info().Str("filename", filename).Int("bytes", len(data)).Msg("Step 1: extracting résumé text")

	text, err := h.extractor.ExtractText(filename, data)
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to extract text from upload")
		middleware.AbortWithError(c, apierror.ErrBadRequest(noTextMessage(filename)))
		return nil, false
	}

	log.Info().Int("textLen", len(text)).Msg("Step 2: optimizing résumé with AI")

	cv, err := h.optimizer.OptimizeCV(c.Request.Context(), text)
	if err != nil {
		log.Error().Err(err).Msg("Failed to optimize résumé")
		middleware.AbortWithError(c, apierror.ErrLLMProcessing("Yapay zeka analizi başarısız oldu. Lütfen tekrar deneyin."))
		return nil, false
	}

	log.Info().Msg("Step 3: rendering optimized PDF")

	pdfBytes, err := h.renderer.Render(cv.Printable())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render résumé PDF")
		middleware.AbortWithError(c, apierror.ErrInternalServer("PDF oluşturulamadı."))
		return nil, false
	}

	feedback := cv.Feedback()
	if strings.TrimSpace(feedback) == "" {
		feedback = defaultFeedback
	}

	return &model.OptimizeResponse{
		Status:      "success",
		AIFeedback:  feedback,
		PDFURL:      service.PDFDataURL(pdfBytes),
		OptimizedCV: cv,
	}, true
}

// readUpload returns the validated multipart "file" field
func (h *CVHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.AbortWithError(c, apierror.ErrBadRequest("Lütfen bir PDF dosyası yükleyin."))
		return "", nil, false
	}
	defer file.Close()

	if !service.SupportedExtension(header.Filename) {
		middleware.AbortWithError(c, apierror.ErrBadRequest("Lütfen sadece PDF veya DOCX dosyası yükleyin."))
		return "", nil, false
	}

	if header.Size > h.maxFileSize {
		middleware.AbortWithError(c, apierror.ErrBadRequest(tooLargeMessage(h.maxFileSize)))
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		middleware.AbortWithError(c, apierror.ErrInternalServer("Dosya okunamadı."))
		return "", nil, false
	}
	if int64(len(data)) > h.maxFileSize {
		middleware.AbortWithError(c, apierror.ErrBadRequest(tooLargeMessage(h.maxFileSize)))
		return "", nil, false
	}

	// PDF bodies must start with the %PDF magic bytes
	if service.IsPDF(header.Filename) && !bytes.HasPrefix(data, []byte("%PDF")) {
		middleware.AbortWithError(c, apierror.ErrBadRequest("Geçersiz PDF dosyası."))
		return "", nil, false
	}

	return header.Filename, data, true
}

func tooLargeMessage(limit int64) string {
	return fmt.Sprintf("Dosya çok büyük. En fazla %.1f MB yükleyebilirsiniz.", float64(limit)/(1024*1024))
}

func noTextMessage(filename string) string {
	if service.IsPDF(filename) {
		return "PDF'den metin okunamadı."
	}
	return "Belgeden metin okunamadı."
}
