package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/jadenj13/jirasync/internals/jirasync"
)

// issueFields limits the issue payload to what the label sync reads.
const issueFields = "project,components,labels"

type Client struct {
	jc *gojira.Client
}

// NewClient builds a basic-auth client. Blank credentials are accepted; the
// tracker rejects them on the first lookup.
func NewClient(baseURL, username, apiToken string) (*Client, error) {
	tp := gojira.BasicAuthTransport{
		Username: username,
		Password: apiToken,
	}
	httpClient := tp.Client()
	httpClient.Timeout = 30 * time.Second

	jc, err := gojira.NewClient(httpClient, strings.TrimSuffix(baseURL, "/")+"/")
	if err != nil {
		return nil, fmt.Errorf("jira client: %w", err)
	}
	return &Client{jc: jc}, nil
}

// Connect adapts NewClient to jirasync.ConnectFunc.
func Connect(baseURL, username, apiToken string) (jirasync.IssueFinder, error) {
	c, err := NewClient(baseURL, username, apiToken)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) FindIssue(ctx context.Context, key string) (jirasync.Issue, error) {
	issue, resp, err := c.jc.Issue.GetWithContext(ctx, key, &gojira.GetQueryOptions{Fields: issueFields})
	if err != nil {
		return jirasync.Issue{}, trackerError(key, resp, err)
	}
	if issue == nil || issue.Fields == nil {
		return jirasync.Issue{Key: key}, nil
	}

	out := jirasync.Issue{
		Key:        issue.Key,
		ProjectKey: issue.Fields.Project.Key,
		Labels:     issue.Fields.Labels,
	}
	for _, comp := range issue.Fields.Components {
		if comp != nil {
			out.Components = append(out.Components, comp.Name)
		}
	}
	return out, nil
}

// trackerError classifies a failed lookup by HTTP status. go-jira reads the
// error envelope into *gojira.Error, which supplies the message.
func trackerError(key string, resp *gojira.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return &jirasync.TrackerError{Key: key, Message: err.Error()}
	}

	msg := http.StatusText(resp.StatusCode)
	var jerr *gojira.Error
	if errors.As(err, &jerr) {
		switch {
		case len(jerr.ErrorMessages) > 0:
			msg = strings.Join(jerr.ErrorMessages, "; ")
		case len(jerr.Errors) > 0:
			fields := make([]string, 0, len(jerr.Errors))
			for field := range jerr.Errors {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				parts = append(parts, f+": "+jerr.Errors[f])
			}
			msg = strings.Join(parts, "; ")
		}
	}
	return &jirasync.TrackerError{Key: key, StatusCode: resp.StatusCode, Message: msg}
}
