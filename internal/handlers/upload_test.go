// internal/handlers/upload_test.go
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/services"
	"github.com/fanzlabs/commissions-backend/internal/store"
)

func TestRequestIDFromKey(t *testing.T) {
	id := uuid.New()

	parsed, err := requestIDFromKey("deliveries/" + id.String() + "/20260830_aaaa1111.mp4")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	parsed, err = requestIDFromKey("references/" + id.String() + "/pose.png")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, key := range []string{
		"",
		"deliveries/not-a-uuid/x.png",
		"other/" + id.String() + "/x.png",
		"deliveries/" + id.String(),
	} {
		_, err := requestIDFromKey(key)
		assert.Error(t, err, key)
	}
}

func TestGetDownloadURLScopedToRequestParties(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Policy: config.PolicyConfig{OfferExpiryDays: 7}}
	requestStore := store.NewMemoryStore()
	commission := services.NewCommissionService(requestStore, cfg)
	storage, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	fanID := uuid.New()
	request, err := commission.CreateRequest(context.Background(), fanID, &services.CreateCommissionRequest{
		CreatorID:      uuid.New(),
		PlatformID:     uuid.New(),
		ContentType:    "video",
		Description:    "A custom birthday greeting video",
		ProposedAmount: 50,
	})
	require.NoError(t, err)

	h := NewUploadHandler(storage, commission)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User-ID"))
		c.Set("user_type", c.GetHeader("X-User-Type"))
	})
	r.GET("/uploads/url", h.GetDownloadURL)

	key := "deliveries/" + request.ID.String() + "/20260830_aaaa1111.mp4"

	// A stranger cannot presign another request's artifact.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/url?key="+key, nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	req.Header.Set("X-User-Type", "fan")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A party clears the access check; presigning then fails only because
	// storage is not configured in this test.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/uploads/url?key="+key, nil)
	req.Header.Set("X-User-ID", fanID.String())
	req.Header.Set("X-User-Type", "fan")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
