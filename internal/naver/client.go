package naver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://m.booking.naver.com/graphql"
	DefaultTimeout  = 15 * time.Second

	cookieAut = "NID_AUT"
	cookieSes = "NID_SES"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.5 Safari/605.1.15"

	maxBodyBytes = 8 << 20
)

const bookingsQuery = `query bookings($input: BookingParams) {
  booking(input: $input) {
    id
    totalCount
    bookings {
      bookingId
      businessName
      serviceName
      bookingStatusCode
      isCompleted
      startDate
      endDate
      regDateTime
      completedDateTime
      cancelledDateTime
      snapshotJson
      business {
        addressJson
        completedPinValue
        name
        serviceName
        isImp
        isDeleted
        isCompletedButtonImp
        phoneInformationJson
      }
    }
  }
}`

var ErrFetchFailed = errors.New("naver: fetch failed")

// FetchError carries the raw upstream body since the vendor schema can
// change without notice.
type FetchError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("naver: fetch failed: ")
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Body != "" {
		b.WriteString("\n")
		b.WriteString(e.Body)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// UserAuth is the pair of session cookies of a logged-in user.
type UserAuth struct {
	Aut string
	Ses string
}

func (a UserAuth) cookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: cookieAut, Value: a.Aut},
		{Name: cookieSes, Value: a.Ses},
	}
}

type FetchOptions struct {
	Statuses  []StatusCode
	StartDate *time.Time
	EndDate   *time.Time
	Size      int
	Page      int
}

type Client struct {
	endpoint string
	auth     UserAuth
	http     *http.Client
}

type ClientOption func(*Client)

func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(auth UserAuth, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		auth:     auth,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type request struct {
	OperationName string    `json:"operationName"`
	Variables     variables `json:"variables"`
	Query         string    `json:"query"`
}

type variables struct {
	Input input `json:"input"`
}

type input struct {
	QueryType            string     `json:"queryType"`
	BusinessMainCategory string     `json:"businessMainCategory"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	Size                 int        `json:"size"`
	Page                 int        `json:"page"`
}

func newRequest(opt FetchOptions) request {
	return request{
		OperationName: "bookings",
		Variables: variables{Input: input{
			QueryType:            joinStatuses(opt.Statuses),
			BusinessMainCategory: "ALL",
			StartDate:            utcPtr(opt.StartDate),
			EndDate:              utcPtr(opt.EndDate),
			Size:                 opt.Size,
			Page:                 opt.Page,
		}},
		Query: bookingsQuery,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// Fetch sends one bookings query. There is no retry; callers decide whether
// to call again.
func (c *Client) Fetch(ctx context.Context, opt FetchOptions) (*Response, error) {
	payload, err := json.Marshal(newRequest(opt))
	if err != nil {
		return nil, &FetchError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &FetchError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for _, ck := range c.auth.cookies() {
		req.AddCookie(ck)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Op: "read response", StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Op: "unexpected status", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{Op: "decode response", StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}
	if out.Data.Booking == nil {
		err := errors.New("response has no data.booking")
		if len(out.Errors) > 0 {
			err = fmt.Errorf("graphql: %s", out.Errors[0].Message)
		}
		return nil, &FetchError{Op: "decode response", StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}
	for i, b := range out.Data.Booking.Bookings {
		if b.Snapshot.BookingID == 0 {
			return nil, &FetchError{
				Op:         "decode response",
				StatusCode: resp.StatusCode,
				Body:       string(body),
				Err:        fmt.Errorf("booking #%d has no snapshotJson", i),
			}
		}
	}
	return &out, nil
}
