package reportingclient

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/pkg/httpclient"
	"github.com/gaze-network/artifact-registry/pkg/logger"
)

type Config struct {
	Disabled       bool   `mapstructure:"disabled"`
	BaseURL        string `mapstructure:"base_url"`
	Name           string `mapstructure:"name"`
	WebsiteURL     string `mapstructure:"website_url"`
	RegistryAPIURL string `mapstructure:"registry_api_url"`
}

type ReportingClient struct {
	httpClient *httpclient.Client
	config     Config
}

const defaultBaseURL = "https://registry.api.gaze.network"

func New(config Config) (*ReportingClient, error) {
	baseURL := utils.Default(config.BaseURL, defaultBaseURL)
	httpClient, err := httpclient.New(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	if config.Name == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "reporting.name config is required if reporting is enabled")
	}
	return &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}, nil
}

type SubmitCheckpointPayload struct {
	Type                string      `json:"type"`
	ClientVersion       string      `json:"clientVersion"`
	DBVersion           int         `json:"dbVersion"`
	Height              uint64      `json:"height"`
	LatestSequence      uint64      `json:"latestSequence"`
	EventHash           common.Hash `json:"eventHash"`
	CumulativeEventHash common.Hash `json:"cumulativeEventHash"`
}

func (r *ReportingClient) SubmitCheckpoint(ctx context.Context, payload SubmitCheckpointPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := r.httpClient.Post(ctx, "/v1/report/checkpoint", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit checkpoint report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.DebugContext(ctx, "checkpoint report submitted", slog.Any("payload", payload))
	return nil
}

type SubmitNodeReportPayload struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	WebsiteURL     string `json:"websiteURL,omitempty"`
	RegistryAPIURL string `json:"registryAPIURL,omitempty"`
}

func (r *ReportingClient) SubmitNodeReport(ctx context.Context) error {
	payload := SubmitNodeReportPayload{
		Name:           r.config.Name,
		Type:           "artifact-registry",
		WebsiteURL:     r.config.WebsiteURL,
		RegistryAPIURL: r.config.RegistryAPIURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := r.httpClient.Post(ctx, "/v1/report/node", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit node report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.InfoContext(ctx, "node report submitted", slog.Any("payload", payload))
	return nil
}
