package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samterminal/samclient/internal/client/models"
)

const (
	dateLayout          = "2006-01-02"
	localDateTimeLayout = "2006-01-02T15:04:05"
)

// EmailLogQuery selects send logs between two calendar days, inclusive.
type EmailLogQuery struct {
	Start time.Time
	End   time.Time
	Page  int
	Size  int
	// Sort is "field,dir", e.g. "sentAt,desc". Empty uses the server default.
	Sort string
}

func (q EmailLogQuery) values() url.Values {
	v := url.Values{
		"start": {q.Start.Format(dateLayout)},
		"end":   {q.End.Format(dateLayout)},
		"page":  {strconv.Itoa(q.Page)},
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// IPStatsQuery selects per-IP send statistics for one day; a zero Date
// means today on the server.
type IPStatsQuery struct {
	Date      time.Time
	Page      int
	Size      int
	SortField string
	SortDir   string
}

func (q IPStatsQuery) values() url.Values {
	v := url.Values{"page": {strconv.Itoa(q.Page)}}
	if !q.Date.IsZero() {
		v.Set("date", q.Date.Format(dateLayout))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.SortField != "" {
		v.Set("sortField", q.SortField)
	}
	if q.SortDir != "" {
		v.Set("sortDir", q.SortDir)
	}
	return v
}

const smtpPath = "/api/admin/email-verification/smtp"

func (c *HTTPClient) SMTPConfigs(ctx context.Context, token string) ([]models.SMTPConfig, error) {
	var out []smtpConfigResponse
	if err := c.doJSON(ctx, ErrSMTPListFailed, http.MethodGet, smtpPath, token, nil, &out); err != nil {
		return nil, err
	}
	res := make([]models.SMTPConfig, 0, len(out))
	for _, r := range out {
		res = append(res, mapSMTPConfig(r))
	}
	return res, nil
}

func (c *HTTPClient) CreateSMTPConfig(ctx context.Context, token string, cfg models.SMTPConfig) (*models.SMTPConfig, error) {
	return c.smtpCall(ctx, ErrSMTPCreateFailed, http.MethodPost, smtpPath, token, cfg)
}

// UpdateSMTPConfig keeps the stored password when cfg.Password is empty.
func (c *HTTPClient) UpdateSMTPConfig(ctx context.Context, token string, id int64, cfg models.SMTPConfig) (*models.SMTPConfig, error) {
	return c.smtpCall(ctx, ErrSMTPUpdateFailed, http.MethodPut, smtpPath+"/"+idString(id), token, cfg)
}

func (c *HTTPClient) smtpCall(ctx context.Context, kind error, method, path, token string, cfg models.SMTPConfig) (*models.SMTPConfig, error) {
	var out smtpConfigResponse
	if err := c.doJSON(ctx, kind, method, path, token, smtpConfigToRequest(cfg), &out); err != nil {
		return nil, err
	}
	saved := mapSMTPConfig(out)
	return &saved, nil
}

func (c *HTTPClient) DeleteSMTPConfig(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, ErrSMTPDeleteFailed, http.MethodDelete, smtpPath+"/"+idString(id), token, nil, nil)
}

func (c *HTTPClient) TestSMTPConfig(ctx context.Context, token string, id int64, toEmail string) error {
	return c.doJSON(ctx, ErrSMTPTestFailed, http.MethodPost, smtpPath+"/"+idString(id)+"/test", token, smtpTestRequest{ToEmail: toEmail}, nil)
}

func (c *HTTPClient) EmailLogs(ctx context.Context, token string, q EmailLogQuery) (*models.Page[models.EmailSendLog], error) {
	var out pageResponse[emailSendLogDTO]
	path := withQuery("/api/admin/email-verification/logs", q.values())
	if err := c.doJSON(ctx, ErrEmailLogsFailed, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return mapPage(&out, mapEmailSendLog), nil
}

// DecryptEmailCode reveals the plain code of one send log entry. The
// backend audits every call.
func (c *HTTPClient) DecryptEmailCode(ctx context.Context, token string, logID int64) (string, error) {
	var out decryptResponse
	path := "/api/admin/email-verification/logs/" + idString(logID) + "/decrypt"
	if err := c.doJSON(ctx, ErrDecryptCodeFailed, http.MethodPost, path, token, nil, &out); err != nil {
		return "", err
	}
	return out.Code, nil
}

func (c *HTTPClient) EmailIPStats(ctx context.Context, token string, q IPStatsQuery) (*models.Page[models.EmailIPStats], error) {
	var out pageResponse[emailIPStatsDTO]
	path := withQuery("/api/admin/email-verification/ip-stats", q.values())
	if err := c.doJSON(ctx, ErrIPStatsFailed, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return mapPage(&out, mapEmailIPStats), nil
}

// BanIP bans an address; a nil BannedUntil asks for a permanent ban.
func (c *HTTPClient) BanIP(ctx context.Context, token string, ban models.EmailIPBan) (*models.EmailIPBan, error) {
	in := emailIPBanRequest{IP: ban.IP, Reason: ban.Reason}
	if ban.BannedUntil != nil {
		in.BannedUntil = ban.BannedUntil.Format(localDateTimeLayout)
	}
	var out emailIPBanResponse
	if err := c.doJSON(ctx, ErrBanIPFailed, http.MethodPost, "/api/admin/email-verification/ip-bans", token, in, &out); err != nil {
		return nil, err
	}
	return &models.EmailIPBan{IP: out.IP, Type: out.Type, BannedUntil: out.BannedUntil.ptr(), Reason: out.Reason}, nil
}

func (c *HTTPClient) UnbanIP(ctx context.Context, token string, ip string) error {
	path := "/api/admin/email-verification/ip-bans/" + url.PathEscape(ip)
	return c.doJSON(ctx, ErrUnbanIPFailed, http.MethodDelete, path, token, nil, nil)
}
