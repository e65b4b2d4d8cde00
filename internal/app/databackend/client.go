// Package databackend отправляет канонические запросы во внешний бэкенд данных
// и проверяет его ответы по схеме.
package databackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/query"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	queryPath   = "query/"
	summaryPath = "summary/"

	maxBodySize = 32 << 20
)

type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
	validate   *validator.Validate
}

func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(cfg.DataBackendURL, cfg.DataBackendSecret, &http.Client{Timeout: cfg.DataBackendTimeout})
}

// NewClientWithHTTP создаёт клиент с заданным http.Client
func NewClientWithHTTP(baseURL, secret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secret:     secret,
		httpClient: httpClient,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Query выполняет один запрос поиска. Повторов нет: решение принимает вызывающий.
func (c *Client) Query(ctx context.Context, q ds.CanonicalQuery) (*ds.QueryResult, error) {
	if err := query.Validate(q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	var out queryResponse
	if err := c.do(ctx, http.MethodPost, queryPath, body, &out); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result := out.toResult()
	logrus.Debugf("data backend query: entry_type=%s total=%d returned=%d",
		result.EntryType, result.TotalCount, len(result.Results))
	return result, nil
}

// Summary возвращает количество записей по статусам для аниме и манги
func (c *Client) Summary(ctx context.Context) (*ds.SummaryResponse, error) {
	var out ds.SummaryResponse
	if err := c.do(ctx, http.MethodGet, summaryPath, nil, &out); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Общий секрет прикладывается к каждому запросу
	req.Header.Set("Authorization", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.Errorf("data backend %s %s failed: %v", method, path, err)
		return newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
		logrus.Warnf("data backend %s %s: %v", method, path, upstream)
		return upstream
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// queryResponse схема ответа на запрос поиска.
// Указатели позволяют отличить отсутствующее поле от нулевого значения.
type queryResponse struct {
	EntryType  ds.EntryType  `json:"entry_type" validate:"required,oneof=anime manga"`
	TotalCount *int          `json:"total_count" validate:"required,gte=0"`
	Results    []resultEntry `json:"results" validate:"required,dive"`
}

type resultEntry struct {
	ID                     *int64                 `json:"id" validate:"required"`
	Title                  *string                `json:"title" validate:"required"`
	NSFW                   *bool                  `json:"nsfw"`
	ImageURL               *string                `json:"image_url"`
	MediaType              *string                `json:"media_type"`
	AlternateTitles        map[string]interface{} `json:"alternate_titles"`
	JSONData               map[string]interface{} `json:"json_data" validate:"required"`
	ApprovedStatus         ds.ApprovedStatus      `json:"approved_status" validate:"required,oneof=approved denied unapproved deleted"`
	StartDate              *string                `json:"start_date"`
	EndDate                *string                `json:"end_date"`
	MemberCount            *int64                 `json:"member_count"`
	AverageEpisodeDuration *int64                 `json:"average_episode_duration"`
	MetadataUpdatedAt      *float64               `json:"metadata_updated_at" validate:"required"`
	StatusUpdatedAt        *float64               `json:"status_updated_at" validate:"required"`
}

func (r queryResponse) toResult() *ds.QueryResult {
	result := &ds.QueryResult{
		EntryType:  r.EntryType,
		TotalCount: *r.TotalCount,
		Results:    make([]ds.QueryEntry, 0, len(r.Results)),
	}
	for _, e := range r.Results {
		result.Results = append(result.Results, ds.QueryEntry{
			ID:                     *e.ID,
			Title:                  *e.Title,
			NSFW:                   e.NSFW,
			ImageURL:               e.ImageURL,
			MediaType:              e.MediaType,
			AlternateTitles:        e.AlternateTitles,
			JSONData:               e.JSONData,
			ApprovedStatus:         e.ApprovedStatus,
			StartDate:              e.StartDate,
			EndDate:                e.EndDate,
			MemberCount:            e.MemberCount,
			AverageEpisodeDuration: e.AverageEpisodeDuration,
			MetadataUpdatedAt:      *e.MetadataUpdatedAt,
			StatusUpdatedAt:        *e.StatusUpdatedAt,
		})
	}
	return result
}
