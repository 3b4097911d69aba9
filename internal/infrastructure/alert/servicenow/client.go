// Package servicenow raises PR-crisis incidents in a ServiceNow instance
// through its Table API.
package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/resilience"
)

const incidentPath = "/api/now/table/incident"

type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	executor   *resilience.Executor
}

// New builds a client for the named instance, e.g. instance "acme" targets
// https://acme.service-now.com.
func New(instance, user, password string, executor *resilience.Executor) *Client {
	return NewWithBaseURL(fmt.Sprintf("https://%s.service-now.com", instance), user, password, executor)
}

func NewWithBaseURL(baseURL, user, password string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		user:       user,
		password:   password,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		executor:   executor,
	}
}

type incidentRecord struct {
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Urgency          string `json:"urgency"`
	Impact           string `json:"impact"`
}

func (c *Client) RaiseIncident(ctx context.Context, incident domain.Incident) error {
	record := incidentRecord{
		ShortDescription: incident.Title,
		Description:      incident.Description,
		Urgency:          incident.Urgency,
		Impact:           incident.Impact,
	}

	call := func(callCtx context.Context) error {
		return c.postIncident(callCtx, record)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "servicenow.incident", call, classifyIncidentError)
	} else {
		err = call(ctx)
	}
	return markTemporary("raise incident", err)
}

func (c *Client) postIncident(ctx context.Context, record incidentRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal incident request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+incidentPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create incident request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("servicenow incident request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newTableAPIError(resp)
	}
	return nil
}

// newTableAPIError captures at most 2048 bytes of the failure body and
// prefers the message inside ServiceNow's {"error":{"message","detail"}}
// envelope over the raw payload.
func newTableAPIError(resp *http.Response) *TableAPIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	detail := string(raw)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		detail = envelope.Error.Message
		if envelope.Error.Detail != "" {
			detail += ": " + envelope.Error.Detail
		}
	}

	return &TableAPIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Detail:     detail,
	}
}
