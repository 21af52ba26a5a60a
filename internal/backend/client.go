package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
	"chemviz/internal/dao"
	"chemviz/internal/utils"
)

const (
	uploadPath    = "upload/"
	historyPath   = "history/"
	reportPathFmt = "report/%d/"

	uploadField = "file"

	maxErrorMessageLen = 200
)

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the analysis backend. It is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	httpCli  *http.Client
	username string
	password string
	logger   *logrus.Entry
}

func NewClient(conf config.BackendConfig, logger *logrus.Entry) (*Client, error) {
	base := conf.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", conf.BaseURL)
	}

	httpCli := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: conf.InsecureSkipVerify,
			},
		},
		Timeout: conf.TimeoutDuration(),
	}

	return &Client{
		baseURL:  baseURL,
		httpCli:  httpCli,
		username: conf.Username,
		password: conf.Password,
		logger:   logger,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Upload posts the CSV content as multipart field "file" and returns the analysis.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*dao.AnalysisResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(uploadField, filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	size := body.Len()

	req, err := c.newRequest(ctx, http.MethodPost, uploadPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"file": filepath.Base(filename),
		"size": humanize.Bytes(uint64(size)),
	}).Debug("upload csv")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result dao.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &result, nil
}

// History returns the backend's most recent upload records, newest first.
func (c *Client) History(ctx context.Context) ([]dao.HistoryRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, historyPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	records := make([]dao.HistoryRecord, 0)
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return records, nil
}

// Report downloads the PDF report of analysis id.
func (c *Client) Report(ctx context.Context, id int64) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf(reportPathFmt, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report body: %w", err)
	}
	c.logger.Debugf("report %d downloaded, %s", id, humanize.Bytes(uint64(len(data))))
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, err
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

// do sends req and turns non-2xx responses into *APIError. The caller closes
// the body of a successful response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Header.Get("Content-Type"), data),
	}
	c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	}).Debugf("backend error: %s", apiErr.Message)
	return nil, apiErr
}

// errorMessage extracts a human readable reason from an error body. It
// understands {"error": ...}, {"detail": ...}, field error maps such as
// {"file": ["No file was submitted."]}, HTML pages and plain text.
func errorMessage(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var errResp dao.ErrorResponse
		if err := json.Unmarshal(trimmed, &errResp); err == nil {
			if errResp.Error != "" {
				return errResp.Error
			}
			if errResp.Detail != "" {
				return errResp.Detail
			}
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil && len(fields) > 0 {
			return fieldErrors(fields)
		}
	}

	if utils.LooksLikeHTML(contentType, trimmed) {
		return utils.SummarizeHTML(trimmed, maxErrorMessageLen)
	}
	return utils.Truncate(strings.Join(strings.Fields(string(trimmed)), " "), maxErrorMessageLen)
}

func fieldErrors(fields map[string]json.RawMessage) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		var msgs []string
		if err := json.Unmarshal(fields[name], &msgs); err != nil {
			var msg string
			if err := json.Unmarshal(fields[name], &msg); err != nil {
				msg = string(fields[name])
			}
			msgs = []string{msg}
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(msgs, " ")))
	}
	return strings.Join(parts, "; ")
}
