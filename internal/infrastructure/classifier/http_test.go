package classifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
)

func crops(n, size int) []entity.CroppedBean {
	out := make([]entity.CroppedBean, n)
	for i := range out {
		out[i] = entity.CroppedBean{Pixels: image.NewRGBA(image.Rect(0, 0, size, size)), LabelIndex: -1}
	}
	return out
}

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 64, req.Size)
		require.Len(t, req.Images, 2)

		raw, err := base64.StdEncoding.DecodeString(req.Images[0])
		require.NoError(t, err)
		img, err := imaging.Decode(strings.NewReader(string(raw)))
		require.NoError(t, err)
		require.Equal(t, 64, img.Bounds().Dx())

		_ = json.NewEncoder(w).Encode(classifyResponse{Predictions: [][]float64{
			{0, 0, 0, 1, 0, 0},
			{1, 0, 0, 0, 0, 0},
		}})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 6, time.Second)
	pred, err := c.Classify(context.Background(), crops(2, 64))
	require.NoError(t, err)
	require.Equal(t, []int{3, 0}, entity.ArgMax(pred))
}

func TestHTTPClassifier_RejectsMismatchedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(classifyResponse{Predictions: [][]float64{{1, 0}}})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 6, time.Second)
	_, err := c.Classify(context.Background(), crops(2, 8))
	require.Error(t, err)

	_, err = c.Classify(context.Background(), crops(1, 8))
	require.ErrorContains(t, err, "has 2 classes")
}

func TestHTTPClassifier_StatusAndEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL+"/", 6, time.Second)
	require.NoError(t, c.CheckHealth(context.Background()))

	_, err := c.Classify(context.Background(), crops(1, 8))
	require.ErrorContains(t, err, "status: 500")

	pred, err := c.Classify(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, pred)
}
