package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// HTTPClassifier клиент внешнего сервиса с нейросетью
type HTTPClassifier struct {
	url     string // URL сервиса классификации
	classes int    // ожидаемая длина вектора вероятностей
	client  *http.Client
}

type classifyRequest struct {
	Size   int      `json:"size"`
	Images []string `json:"images"` // PNG в base64
}

type classifyResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

// NewHTTPClassifier создаёт клиента; classes равно числу классов в наборе меток.
func NewHTTPClassifier(url string, classes int, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:     strings.TrimRight(url, "/"),
		classes: classes,
		client:  &http.Client{Timeout: timeout},
	}
}

// Classify отправляет вырезки в сервис и возвращает по вектору на вырезку.
func (c *HTTPClassifier) Classify(ctx context.Context, crops []entity.CroppedBean) ([][]float64, error) {
	if len(crops) == 0 {
		return nil, nil
	}

	req := classifyRequest{Images: make([]string, len(crops))}
	for i, crop := range crops {
		if crop.Pixels == nil {
			return nil, fmt.Errorf("%w: crop %d has no pixels", entity.ErrInvalidInput, i)
		}
		req.Size = crop.Pixels.Bounds().Dx()

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, crop.Pixels, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode crop %d: %w", i, err)
		}
		req.Images[i] = base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classification failed with status: %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Predictions) != len(crops) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d crops", len(result.Predictions), len(crops))
	}
	for i, p := range result.Predictions {
		if len(p) != c.classes {
			return nil, fmt.Errorf("prediction %d has %d classes, want %d", i, len(p), c.classes)
		}
	}
	return result.Predictions, nil
}

// CheckHealth проверяет доступность сервиса классификации
func (c *HTTPClassifier) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("classifier unhealthy: %d", resp.StatusCode)
	}
	return nil
}

var _ port.BeanClassifier = (*HTTPClassifier)(nil)
