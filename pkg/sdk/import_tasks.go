package sdk

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// ImportTaskSummary describes a queued or finished import task.
type ImportTaskSummary struct {
	TaskID       int64  `json:"taskId"`
	TaskCode     string `json:"taskCode"`
	ImportType   string `json:"importType"`
	Status       string `json:"status"`
	FileName     string `json:"fileName"`
	CreatedBy    string `json:"createdBy"`
	CreatedAt    Time   `json:"createdAt"`
	TotalCount   *int   `json:"totalCount,omitempty"`
	SuccessCount *int   `json:"successCount,omitempty"`
	FailureCount *int   `json:"failureCount,omitempty"`
	StartedAt    *Time  `json:"startedAt,omitempty"`
	CompletedAt  *Time  `json:"completedAt,omitempty"`
}

// ImportTaskItem is one chunk of an import task.
type ImportTaskItem struct {
	ItemID        int64  `json:"itemId"`
	SequenceNo    int    `json:"sequenceNo"`
	Status        string `json:"status"`
	FileName      string `json:"fileName"`
	TotalCount    *int   `json:"totalCount,omitempty"`
	SuccessCount  *int   `json:"successCount,omitempty"`
	FailureCount  *int   `json:"failureCount,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
	CreatedAt     Time   `json:"createdAt"`
	StartedAt     *Time  `json:"startedAt,omitempty"`
	CompletedAt   *Time  `json:"completedAt,omitempty"`
}

// ImportTaskDetail is a task with its items.
type ImportTaskDetail struct {
	Task  ImportTaskSummary `json:"task"`
	Items []ImportTaskItem  `json:"items"`
}

// ImportTaskFailure is one failed row recorded for a task.
type ImportTaskFailure struct {
	ID         int64  `json:"id"`
	Section    string `json:"section,omitempty"`
	RowNumber  *int   `json:"rowNumber,omitempty"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	RawPayload string `json:"rawPayload,omitempty"`
	CreatedAt  Time   `json:"createdAt"`
	ResolvedAt *Time  `json:"resolvedAt,omitempty"`
}

// ImportTaskQuery filters import tasks.
type ImportTaskQuery struct {
	PageQuery
	ImportType string
	Status     string
	CreatedBy  string
}

// ListImportTasks returns one page of import tasks.
func (c *Client) ListImportTasks(ctx context.Context, q ImportTaskQuery) (*Page[ImportTaskSummary], error) {
	v := url.Values{}
	q.PageQuery.apply(v)
	setIfNotEmpty(v, "importType", q.ImportType)
	setIfNotEmpty(v, "status", q.Status)
	setIfNotEmpty(v, "createdBy", q.CreatedBy)

	var page Page[ImportTaskSummary]
	if err := c.get(ctx, "/import-tasks", v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetImportTask fetches a task with its items.
func (c *Client) GetImportTask(ctx context.Context, taskID int64) (*ImportTaskDetail, error) {
	var detail ImportTaskDetail
	if err := c.get(ctx, fmt.Sprintf("/import-tasks/%d", taskID), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListImportFailures returns failed rows of a task, optionally filtered by status.
func (c *Client) ListImportFailures(ctx context.Context, taskID int64, status string, q PageQuery) (*Page[ImportTaskFailure], error) {
	v := q.values()
	setIfNotEmpty(v, "status", status)

	var page Page[ImportTaskFailure]
	if err := c.get(ctx, fmt.Sprintf("/import-tasks/%d/failures", taskID), v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RetryImportTask resubmits a corrected workbook for the given failures.
func (c *Client) RetryImportTask(ctx context.Context, taskID int64, fileName string, file io.Reader, failureIDs []int64) (*ImportTaskDetail, error) {
	fields := url.Values{}
	for _, id := range failureIDs {
		fields.Add("failureIds", strconv.FormatInt(id, 10))
	}

	var detail ImportTaskDetail
	err := c.DoUpload(ctx, Upload{
		Path:     fmt.Sprintf("/import-tasks/%d/retry", taskID),
		FileName: fileName,
		File:     file,
		Fields:   fields,
		Timeout:  ImportTimeoutStandard,
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
