package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/models"
)

type stubActivityService struct {
	bulkResult    *core.BulkResult
	gotEntries    []models.ActivityEntry
	gotCredential string
	gotEmail      string
}

func (s *stubActivityService) CreateBulk(_ context.Context, _, userEmail, credentialID string, entries []models.ActivityEntry) (*core.BulkResult, error) {
	s.gotEntries = entries
	s.gotCredential = credentialID
	s.gotEmail = userEmail
	return s.bulkResult, nil
}

func (s *stubActivityService) List(context.Context, string, string) ([]*models.ActivityEntry, error) {
	return nil, nil
}

func (s *stubActivityService) Update(context.Context, string, string, string, models.UpdateActivityRequest) error {
	return nil
}

func newImportRouter(t *testing.T, svc core.ActivityService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", "user-a")
		c.Set("userEmail", "bob@example.com")
		c.Next()
	})
	h := NewImportHandler(svc, zaptest.NewLogger(t))
	router.POST("/imports/activities", h.ImportActivities)
	return router
}

func workbookUpload(t *testing.T, credentialID string, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	workbook, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("credentialId", credentialID))
	part, err := writer.CreateFormFile("file", "activities.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestImportActivities(t *testing.T) {
	svc := &stubActivityService{bulkResult: &core.BulkResult{CreatedIDs: []string{"act-1", "act-2"}}}
	router := newImportRouter(t, svc)

	body, contentType := workbookUpload(t, "cred-1", [][]interface{}{
		{"Device", "Timestamp", "Suspicious"},
		{"Chrome on Linux", "2025-06-01T10:00:00Z", "false"},
		{"Tor Browser", "2025-06-01T11:00:00Z", "true"},
	})

	req := httptest.NewRequest(http.MethodPost, "/imports/activities", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cred-1", svc.gotCredential)
	assert.Equal(t, "bob@example.com", svc.gotEmail)
	require.Len(t, svc.gotEntries, 2)
	assert.Equal(t, "Chrome on Linux", svc.gotEntries[0].Device)
	assert.True(t, svc.gotEntries[1].Suspicious)
}

func TestImportActivitiesMissingCredentialID(t *testing.T) {
	svc := &stubActivityService{}
	router := newImportRouter(t, svc)

	body, contentType := workbookUpload(t, "", [][]interface{}{
		{"Device", "Timestamp"},
		{"Chrome on Linux", "2025-06-01T10:00:00Z"},
	})

	req := httptest.NewRequest(http.MethodPost, "/imports/activities", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.gotEntries)
}

func TestImportActivitiesGarbageFile(t *testing.T) {
	svc := &stubActivityService{}
	router := newImportRouter(t, svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("credentialId", "cred-1"))
	part, err := writer.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text, not a workbook"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/imports/activities", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
