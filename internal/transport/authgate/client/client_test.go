package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestGetUser() {
	user := User{
		ID:          uuid.New(),
		Email:       "owner@example.com",
		Role:        "authenticated",
		AppMetadata: AppMetadata{Role: "admin"},
	}

	type tcase struct {
		name       string
		token      string
		httpStatus int
		retryAfter string
		wantUser   *User
		wantErr    error
	}

	cases := []tcase{
		{name: "valid token", token: "good", httpStatus: http.StatusOK, wantUser: &user},
		{name: "unauthorized", token: "expired", httpStatus: http.StatusUnauthorized, wantErr: new(StatusCodeError)},
		{
			name:       "too many requests",
			token:      "busy",
			httpStatus: http.StatusTooManyRequests,
			retryAfter: "5",
			wantErr:    new(TooManyRequestError),
		},
		{name: "internal error", token: "broken", httpStatus: http.StatusInternalServerError, wantErr: new(StatusCodeError)},
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(RouteUser, r.URL.Path)
		s.Equal("key", r.Header.Get("apikey"))

		for _, c := range cases {
			if r.Header.Get("Authorization") != "Bearer "+c.token {
				continue
			}
			if c.retryAfter != "" {
				w.Header().Set("Retry-After", c.retryAfter)
			}
			if c.httpStatus != http.StatusOK {
				w.WriteHeader(c.httpStatus)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			s.NoError(json.NewEncoder(w).Encode(c.wantUser))
			return
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	cl := New(s.server.URL, "key")
	defer func() { s.NoError(cl.Close()) }()

	for _, c := range cases {
		s.Run(c.name, func() {
			got, err := cl.GetUser(context.Background(), c.token)
			if c.wantErr != nil {
				s.Nil(got)
				switch c.wantErr.(type) {
				case *StatusCodeError:
					var scErr *StatusCodeError
					s.Require().True(errors.As(err, &scErr))
					s.Equal(c.httpStatus, scErr.Code)
				case *TooManyRequestError:
					var tmErr *TooManyRequestError
					s.Require().True(errors.As(err, &tmErr))
					s.Equal(5*time.Second, tmErr.RetryAfter)
				}
				return
			}
			s.Require().NoError(err)
			s.Equal(c.wantUser, got)
		})
	}
}

func (s *ClientTestSuite) TestParseRetryAfter() {
	s.Equal(30*time.Second, parseRetryAfter("30"))
	s.Equal(defaultRetryAfter, parseRetryAfter(""))
	s.Equal(defaultRetryAfter, parseRetryAfter("0"))
	s.Equal(defaultRetryAfter, parseRetryAfter("500"))
	s.Equal(defaultRetryAfter, parseRetryAfter("soon"))
}
