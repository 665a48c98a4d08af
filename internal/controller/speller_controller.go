package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autocorrect/internal/service"
	"autocorrect/internal/vocab"
)

type SpellerController struct {
	speller        *service.Speller
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewSpellerController(speller *service.Speller, maxUploadBytes int64, logger *zap.Logger) *SpellerController {
	return &SpellerController{
		speller:        speller,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type CorrectRequest struct {
	Word string `json:"word"`
	K    int    `json:"k"`
}

type Suggestion struct {
	Word string `json:"word"`
	Prob string `json:"prob"`
	Tier string `json:"tier"`
}

type CorrectResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Upload trains a new model from the multipart "file" field.
func (sc *SpellerController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fh.Size > sc.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File exceeds %d bytes", sc.maxUploadBytes),
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		sc.logger.Error("Failed to open upload", zap.String("filename", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file", "details": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, sc.maxUploadBytes))
	if err != nil {
		sc.logger.Error("Failed to read upload", zap.String("filename", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file", "details": err.Error()})
		return
	}
	if !utf8.Valid(data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not valid UTF-8 text"})
		return
	}

	m, err := sc.speller.Train(vocab.TokenizeBytes(data))
	if errors.Is(err, vocab.ErrEmptyCorpus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File contains no words"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Training failed", "details": err.Error()})
		return
	}

	sc.logger.Info("Trained from upload",
		zap.String("filename", fh.Filename),
		zap.Int64("bytes", fh.Size),
		zap.String("model_id", m.ID()))
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"vocab_size": m.Len(),
		"model_id":   m.ID(),
	})
}

func (sc *SpellerController) Correct(c *gin.Context) {
	var request CorrectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	cands, err := sc.speller.Correct(c.Request.Context(), request.Word, request.K)
	switch {
	case errors.Is(err, service.ErrNotTrained):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model not trained yet"})
		return
	case errors.Is(err, service.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty word"})
		return
	case err != nil:
		sc.logger.Error("Correction failed", zap.String("word", request.Word), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Correction failed", "details": err.Error()})
		return
	}

	resp := CorrectResponse{Suggestions: make([]Suggestion, 0, len(cands))}
	for _, cand := range cands {
		resp.Suggestions = append(resp.Suggestions, Suggestion{
			Word: cand.Term,
			Prob: fmt.Sprintf("%.5f", cand.Score),
			Tier: cand.Tier.String(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (sc *SpellerController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, sc.speller.Stats())
}
