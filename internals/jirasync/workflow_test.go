package jirasync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkflow(finder IssueFinder, warn Warner) *Workflow {
	return New(func(string, string, string) (IssueFinder, error) { return finder, nil }, warn)
}

var samplePR = PullRequest{
	Title:  "DEV-1 ABC-1: wire the thing",
	Body:   "Follow-up for XYZ-1",
	Repo:   "org/repo",
	Number: 42,
}

func TestRun_NotConfigured(t *testing.T) {
	wf := newTestWorkflow(jiraEnvironment(), &Collector{})

	_, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRun_NoPrefixes(t *testing.T) {
	wf := newTestWorkflow(jiraEnvironment(), &Collector{})
	_, err := wf.Configure("https://example.atlassian.net", "me@example.com", "token")
	require.NoError(t, err)

	_, err = wf.Run(context.Background(), &fakeHost{}, samplePR, nil)

	assert.ErrorIs(t, err, ErrNoPrefixes)
}

func TestConfigure_WarnsPerBlankField(t *testing.T) {
	var warn Collector
	finder := jiraEnvironment()
	wf := newTestWorkflow(finder, &warn)

	got, err := wf.Configure("", " ", "")
	require.NoError(t, err)

	assert.Same(t, finder, got)
	assert.Equal(t, []string{
		"jira sync configuration is missing jira_url",
		"jira sync configuration is missing jira_username",
		"jira sync configuration is missing jira_api_token",
	}, warn.Messages())
}

func TestConfigure_ConnectError(t *testing.T) {
	wf := New(func(string, string, string) (IssueFinder, error) { return nil, errBoom }, &Collector{})

	_, err := wf.Configure("::", "u", "t")
	require.ErrorIs(t, err, errBoom)

	_, err = wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func configured(t *testing.T, finder IssueFinder) (*Workflow, *Collector) {
	t.Helper()
	warn := &Collector{}
	wf := newTestWorkflow(finder, warn)
	_, err := wf.Configure("https://example.atlassian.net", "me@example.com", "token")
	require.NoError(t, err)
	return wf, warn
}

func TestRun_LabelsPullRequest(t *testing.T) {
	wf, warn := configured(t, jiraEnvironment())
	host := &fakeHost{repoLabels: []string{"ComponentA"}}

	labels, err := wf.Run(context.Background(), host, samplePR, []string{"DEV", "ABC"})
	require.NoError(t, err)

	want := []string{"DEV", "ComponentA", "ComponentB", "ABC"}
	assert.Equal(t, want, labels)
	assert.Equal(t, []string{"DEV", "ComponentB", "ABC"}, host.createdNames())
	assert.Equal(t, [][]string{want}, host.added)
	assert.Zero(t, warn.Len())
}

func TestRun_IssueLabels(t *testing.T) {
	wf, _ := configured(t, jiraEnvironment())

	labels, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV", "ABC"},
		WithProjectKeys(false), WithComponents(false), WithIssueLabels(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"label1", "label2"}, labels)
}

func TestRun_IgnoresBodyWhenTitleHasKeys(t *testing.T) {
	wf, _ := configured(t, jiraEnvironment())

	labels, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"XYZ", "DEV", "ABC"})
	require.NoError(t, err)

	assert.Contains(t, labels, "DEV")
	assert.Contains(t, labels, "ABC")
	assert.NotContains(t, labels, "XYZ")
}

func TestRun_BodyFallback(t *testing.T) {
	wf, _ := configured(t, jiraEnvironment())

	labels, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"XYZ"})
	require.NoError(t, err)

	assert.Equal(t, []string{"XYZ", "ComponentC"}, labels)
}

func TestRun_NoKeys(t *testing.T) {
	wf, warn := configured(t, jiraEnvironment())
	host := &fakeHost{}

	labels, err := wf.Run(context.Background(), host, samplePR, []string{"NOPE"})
	require.NoError(t, err)

	assert.Nil(t, labels)
	assert.Zero(t, host.calls)
	assert.Zero(t, warn.Len())
}

func TestRun_AllFetchesFail(t *testing.T) {
	finder := &fakeFinder{}
	wf, warn := configured(t, finder)
	host := &fakeHost{}

	labels, err := wf.Run(context.Background(), host, samplePR, []string{"DEV", "ABC"})
	require.NoError(t, err)

	assert.Nil(t, labels)
	assert.Zero(t, host.calls)
	assert.Equal(t, 2, warn.Len())
	for _, msg := range warn.Messages() {
		assert.Contains(t, msg, "404 Error while retrieving Jira issue")
	}
}

func TestRun_UnauthorizedWarnsOnce(t *testing.T) {
	finder := &fakeFinder{errs: map[string]error{
		"DEV-1": &TrackerError{Key: "DEV-1", StatusCode: 401, Message: "Unauthorized"},
	}}
	wf, warn := configured(t, finder)

	labels, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV", "ABC"})
	require.NoError(t, err)

	assert.Nil(t, labels)
	assert.Equal(t, 1, warn.Len())
	assert.Equal(t, []string{"DEV-1"}, finder.calls)
}

func TestRun_RemoteFailuresDoNotChangeResult(t *testing.T) {
	wf, warn := configured(t, jiraEnvironment())
	host := &fakeHost{listRepoErr: errBoom, listPRErr: errBoom, addErr: errors.New("forbidden")}

	labels, err := wf.Run(context.Background(), host, samplePR, []string{"DEV"})
	require.NoError(t, err)

	assert.Equal(t, []string{"DEV", "ComponentA", "ComponentB"}, labels)
	assert.Equal(t, 3, warn.Len())
}

func TestRun_Repeatable(t *testing.T) {
	wf, _ := configured(t, jiraEnvironment())
	host := &fakeHost{}

	first, err := wf.Run(context.Background(), host, samplePR, []string{"DEV"})
	require.NoError(t, err)
	second, err := wf.Run(context.Background(), host, samplePR, []string{"DEV"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, host.added, 2)
}

func TestTee(t *testing.T) {
	var a, b Collector
	Tee(&a, nil, &b).Warn("hi")
	assert.Equal(t, []string{"hi"}, a.Messages())
	assert.Equal(t, []string{"hi"}, b.Messages())
}

func TestRun_WithWarner(t *testing.T) {
	wf, shared := configured(t, &fakeFinder{})
	var perRun Collector

	_, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV"}, WithWarner(&perRun))
	require.NoError(t, err)

	assert.Zero(t, shared.Len())
	assert.Equal(t, 1, perRun.Len())
}

func TestRun_WithInclude(t *testing.T) {
	wf, _ := configured(t, jiraEnvironment())

	labels, err := wf.Run(context.Background(), &fakeHost{}, samplePR, []string{"DEV"},
		WithInclude(Include{Project: true}))
	require.NoError(t, err)

	assert.Equal(t, []string{"DEV"}, labels)
}
