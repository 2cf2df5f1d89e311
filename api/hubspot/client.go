package hubspot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/pkg/util"
	"github.com/HavvokLab/contact-sync/setting"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
)

type HubspotClient struct {
	reqClient *req.Client
	contacts  *PageFetcher[Contact]
	logger    zerolog.Logger
	url       string
	pageLimit int
}

func NewHubspotClient(conf config.HubspotConfig) *HubspotClient {
	logger := logger.New("hubspot_api.log")
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = setting.HubspotFetchTimeout
	}

	// No retry: a failed page aborts the whole sync.
	reqClient := req.C().
		SetTimeout(timeout).
		OnBeforeRequest(func(client *req.Client, req *req.Request) error {
			logger.Debug().
				Any("request", req.RawURL).
				Msg("HubspotClient::NewHubspotClient() - requesting")
			return nil
		})

	return &HubspotClient{
		reqClient: reqClient,
		contacts:  NewPageFetcher[Contact](reqClient, conf.Token, conf.PageDelay),
		logger:    logger,
		url:       strings.TrimRight(util.FirstNonEmpty(conf.URL, setting.HubspotDefaultURL), "/"),
		pageLimit: conf.PageLimit,
	}
}

// ListAllContacts walks every contacts page, calling onPage for each.
func (c *HubspotClient) ListAllContacts(ctx context.Context, onPage PageHandler[Contact]) error {
	params := map[string]string{}
	if c.pageLimit > 0 {
		params[LimitParam] = strconv.Itoa(c.pageLimit)
	}

	start := time.Now()
	err := c.contacts.FetchAllPages(ctx, c.url+setting.HubspotContactsPath, params, onPage)
	if err != nil {
		return err
	}

	c.logger.Info().
		Dur("elapsed", time.Since(start)).
		Msg("HubspotClient::ListAllContacts() - all pages processed successfully")
	return nil
}
