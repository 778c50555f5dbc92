package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stocktracker_api/config"
	"stocktracker_api/internal/platform/business/errs"
	"stocktracker_api/metrics"
	"stocktracker_api/pkg/logger"
)

// CatalogCaller -- один аутентифицированный вызов панели за обращение.
// Ретраев нет нигде: временный отказ сразу уходит наверх, политика повторов --
// забота вызывающего.
type CatalogCaller interface {
	Call(ctx context.Context, panel Panel, method, path string, query url.Values, body interface{}, timeout time.Duration) (json.RawMessage, error)
}

type CatalogClient struct {
	cfg    config.PlatformConfig
	creds  CredentialSource
	client *http.Client
	log    logger.Logger
}

func NewCatalogClient(cfg config.PlatformConfig, creds CredentialSource, writer io.Writer) *CatalogClient {
	_log := logger.NewLogger(writer, "[CatalogClient]")
	return &CatalogClient{
		cfg:   cfg,
		creds: creds,
		// дедлайн на вызов задается контекстом; клиентский таймаут -- страховка
		client: &http.Client{Timeout: 100 * time.Second},
		log:    _log,
	}
}

func (c *CatalogClient) baseURL(panel Panel) string {
	if panel == PanelWarehouse {
		return c.cfg.Warehouse.BaseURL
	}
	return c.cfg.Retail.BaseURL
}

func (c *CatalogClient) Call(ctx context.Context, panel Panel, method, path string, query url.Values, body interface{}, timeout time.Duration) (raw json.RawMessage, err error) {
	defer func() { metrics.RecordUpstreamCall(string(panel), err) }()

	token, err := c.creds.Token(ctx, panel)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "reading bearer token", err)
	}
	auth := NewBearerAuth(token)
	if auth == nil {
		return nil, errs.New(errs.KindNoToken, fmt.Sprintf("no bearer token for panel %q", panel))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel() // таймер освобождается на любом исходе

	endpoint := strings.TrimRight(c.baseURL(panel), "/") + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(errs.KindUnknown, "marshaling request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "creating request", err)
	}
	auth.SetApiKey(req)
	req.Header.Set("Content-Type", "application/json")
	if panel == PanelWarehouse {
		// фиксированные заголовки warehouse-панели
		req.Header.Set("countrycode", c.cfg.Values.CountryCode)
		req.Header.Set("language", c.cfg.Values.Language)
		req.Header.Set("clientid", c.cfg.Values.ClientID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.KindTimeout, fmt.Sprintf("%s %s", method, path), err)
		}
		return nil, errs.Wrap(errs.KindNetwork, fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.KindTimeout, fmt.Sprintf("reading %s %s response", method, path), err)
		}
		return nil, errs.Wrap(errs.KindNetwork, fmt.Sprintf("reading %s %s response", method, path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Log("panel %s answered %d on %s %s", panel, resp.StatusCode, method, path)
		return nil, errs.NewAPI(resp.StatusCode, string(respBody), fmt.Sprintf("%s %s", method, path))
	}

	return respBody, nil
}
