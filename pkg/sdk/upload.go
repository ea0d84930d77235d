package sdk

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Import timeouts per endpoint family, sized by the expected workbook size.
const (
	ImportTimeoutShort    = 300 * time.Second
	ImportTimeoutStandard = 600 * time.Second
	ImportTimeoutLong     = 1800 * time.Second
)

// ImportKind names an import endpoint.
type ImportKind string

const (
	ImportMaterials      ImportKind = "materials"
	ImportBOMs           ImportKind = "boms"
	ImportUnits          ImportKind = "units"
	ImportSuppliers      ImportKind = "suppliers"
	ImportSaleOrders     ImportKind = "sale-orders"
	ImportSaleOutstocks  ImportKind = "sale-outstocks"
	ImportPurchaseOrders ImportKind = "purchase-orders"
	ImportSubReqOrders   ImportKind = "sub-req-orders"
)

var importTimeouts = map[ImportKind]time.Duration{
	ImportMaterials:      ImportTimeoutStandard,
	ImportBOMs:           ImportTimeoutStandard,
	ImportUnits:          ImportTimeoutShort,
	ImportSuppliers:      ImportTimeoutStandard,
	ImportSaleOrders:     ImportTimeoutStandard,
	ImportSaleOutstocks:  ImportTimeoutStandard,
	ImportPurchaseOrders: ImportTimeoutLong,
	ImportSubReqOrders:   ImportTimeoutLong,
}

// ImportKinds lists every supported import endpoint.
func ImportKinds() []ImportKind {
	return []ImportKind{
		ImportMaterials, ImportBOMs, ImportUnits, ImportSuppliers,
		ImportSaleOrders, ImportSaleOutstocks, ImportPurchaseOrders, ImportSubReqOrders,
	}
}

// Timeout returns the request timeout for the import kind.
func (k ImportKind) Timeout() time.Duration {
	if d, ok := importTimeouts[k]; ok {
		return d
	}
	return ImportTimeoutStandard
}

// ImportRowError locates one rejected workbook row.
type ImportRowError struct {
	SheetName string `json:"sheetName,omitempty"`
	RowNumber int    `json:"rowNumber"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

// ImportResult summarizes one section of an import.
type ImportResult struct {
	TotalRows    int              `json:"totalRows"`
	SuccessCount int              `json:"successCount"`
	FailureCount int              `json:"failureCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
}

// ImportResponse maps section names (e.g. "saleOrderResult") to their results.
type ImportResponse map[string]ImportResult

// Upload is a multipart file submission.
type Upload struct {
	Path     string
	FileName string
	File     io.Reader
	// Fields are extra form values; repeated keys are sent as repeated parts.
	Fields  url.Values
	Timeout time.Duration
}

// DoUpload streams a multipart form to the API and decodes the response into out.
func (c *Client) DoUpload(ctx context.Context, up Upload, out any) error {
	if up.File == nil {
		return fmt.Errorf("upload file is required")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, up))
	}()

	err := c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        up.Path,
		Timeout:     up.Timeout,
		rawBody:     pr,
		contentType: mw.FormDataContentType(),
	}, out)
	// Unblock the writer if the transport stopped reading early.
	pr.Close()
	return err
}

func writeMultipart(mw *multipart.Writer, up Upload) error {
	part, err := mw.CreateFormFile("file", up.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.File); err != nil {
		return err
	}
	for key, values := range up.Fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				return err
			}
		}
	}
	return mw.Close()
}

// Import uploads a workbook to the import endpoint of the given kind.
func (c *Client) Import(ctx context.Context, kind ImportKind, fileName string, file io.Reader) (ImportResponse, error) {
	var resp ImportResponse
	err := c.DoUpload(ctx, Upload{
		Path:     "/" + string(kind) + "/import",
		FileName: fileName,
		File:     file,
		Timeout:  kind.Timeout(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
