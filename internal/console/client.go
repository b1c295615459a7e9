package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	v1 "github.com/cloudscheduler/console/api/v1"
)

// APIError is a non-zero envelope code returned by the console server.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("console: api error %d: %s", e.Code, e.Message)
}

const tokenHeader = "X-Token"

// Client talks to the console HTTP API. It is safe for concurrent use
// once SetToken has been called.
type Client struct {
	base  string
	token string
	hc    *client.Client
}

func NewClient(baseURL string) (*Client, error) {
	hc, err := client.NewClient(
		client.WithClientReadTimeout(30 * time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   hc,
	}, nil
}

// SetToken installs the access token sent on every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := call[v1.LoginPayload](ctx, c, consts.MethodPost, "/user/login/", &v1.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	c.token = payload.Token
	return payload.Token, nil
}

func (c *Client) Signup(ctx context.Context, username, password, email string) (*v1.UserPayload, error) {
	return call[v1.UserPayload](ctx, c, consts.MethodPost, "/user/", &v1.SignupRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
}

func (c *Client) Profile(ctx context.Context) (*v1.UserPayload, error) {
	return call[v1.UserPayload](ctx, c, consts.MethodGet, "/user/", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, password, email string) (*v1.UserPayload, error) {
	return call[v1.UserPayload](ctx, c, consts.MethodPut, "/user/", &v1.UserUpdateRequest{
		Password: password,
		Email:    email,
	})
}

// Logout revokes the client's token server side and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	_, err := call[struct{}](ctx, c, consts.MethodGet, "/user/logout/?token="+c.token, nil)
	if err == nil {
		c.token = ""
	}
	return err
}

func (c *Client) ListTasks(ctx context.Context, page int) (*v1.TaskListPayload, error) {
	return call[v1.TaskListPayload](ctx, c, consts.MethodGet, fmt.Sprintf("/task/?page=%d", page), nil)
}

func (c *Client) GetTask(ctx context.Context, taskUUID string) (*v1.TaskDetailPayload, error) {
	return call[v1.TaskDetailPayload](ctx, c, consts.MethodGet, "/task/"+taskUUID+"/", nil)
}

func (c *Client) CreateTask(ctx context.Context, settingsUUID string) (*v1.TaskDetailPayload, error) {
	return call[v1.TaskDetailPayload](ctx, c, consts.MethodPost, "/task/", &v1.TaskCreateRequest{
		SettingsUUID: settingsUUID,
	})
}

func (c *Client) DeleteTask(ctx context.Context, taskUUID string) error {
	_, err := call[struct{}](ctx, c, consts.MethodDelete, "/task/"+taskUUID+"/", nil)
	return err
}

func (c *Client) ListSettings(ctx context.Context, page int) (*v1.SettingsListPayload, error) {
	return call[v1.SettingsListPayload](ctx, c, consts.MethodGet, fmt.Sprintf("/task_settings/?page=%d", page), nil)
}

// call performs one request and unwraps the {code, message, payload}
// envelope. A non-zero code becomes an *APIError.
func call[T any](ctx context.Context, c *Client, method, path string, body interface{}) (*T, error) {
	req := protocol.AcquireRequest()
	res := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(res)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.base + path)
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return nil, err
		}
		req.SetBody(data)
		req.Header.SetContentTypeBytes([]byte("application/json"))
	}

	if err := c.hc.Do(ctx, req, res); err != nil {
		return nil, fmt.Errorf("console: request %s %s: %w", method, path, err)
	}

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Payload T      `json:"payload"`
	}
	if err := sonic.Unmarshal(res.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("console: decode response of %s %s: %w", method, path, err)
	}
	if envelope.Code != 0 {
		return nil, &APIError{Code: envelope.Code, Message: envelope.Message}
	}
	return &envelope.Payload, nil
}
