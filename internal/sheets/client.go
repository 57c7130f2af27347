// Package sheets реализует добавление строк в Google-таблицу, куда попадают лиды сайта.
//
// Метаданные документа (список вкладок) загружаются один раз при создании клиента.
// Если загрузка не удалась, сервис не должен стартовать.
// Строка сопоставляется с колонками по заголовкам в первой строке вкладки.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	// ErrSheetNotFound вкладки с таким названием нет в документе.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrNoHeaderRow в первой строке вкладки нет заголовков.
	ErrNoHeaderRow = errors.New("sheet has no header row")
)

// Credentials данные сервисного аккаунта Google.
type Credentials struct {
	Email      string
	PrivateKey string
}

// Client добавляет строки во вкладки одного документа.
type Client struct {
	svc        *sheetsapi.Service
	documentID string
	titles     map[string]struct{}

	mu      sync.Mutex
	headers map[string][]string
}

// New авторизуется сервисным аккаунтом и загружает метаданные документа.
func New(ctx context.Context, documentID string, creds Credentials) (*Client, error) {
	const op = "sheets.New"

	conf := &jwt.Config{
		Email:      creds.Email,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{scopeSpreadsheets},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewWithService(ctx, svc, documentID)
}

// NewWithService создаёт клиент поверх готового сервиса Sheets API.
func NewWithService(ctx context.Context, svc *sheetsapi.Service, documentID string) (*Client, error) {
	const op = "sheets.NewWithService"

	doc, err := svc.Spreadsheets.Get(documentID).
		Fields("spreadsheetId", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: load document info: %w", op, err)
	}

	titles := make(map[string]struct{}, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil {
			titles[sheet.Properties.Title] = struct{}{}
		}
	}

	return &Client{
		svc:        svc,
		documentID: documentID,
		titles:     titles,
		headers:    make(map[string][]string),
	}, nil
}

// Titles возвращает названия вкладок, известные на момент старта.
func (c *Client) Titles() []string {
	result := make([]string, 0, len(c.titles))
	for title := range c.titles {
		result = append(result, title)
	}
	return result
}

// AppendRow добавляет строку во вкладку tab. Ключи fields сопоставляются с заголовками колонок,
// колонки без значения остаются пустыми. Повторных попыток нет.
func (c *Client) AppendRow(ctx context.Context, tab string, fields map[string]string) error {
	const op = "sheets.AppendRow"

	if _, ok := c.titles[tab]; !ok {
		return fmt.Errorf("%s: %q: %w", op, tab, ErrSheetNotFound)
	}

	headers, err := c.headerRow(ctx, tab)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	row := make([]interface{}, len(headers))
	for i, header := range headers {
		row[i] = fields[header]
	}

	_, err = c.svc.Spreadsheets.Values.Append(c.documentID, quoteTab(tab), &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) headerRow(ctx context.Context, tab string) ([]string, error) {
	c.mu.Lock()
	cached, ok := c.headers[tab]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.documentID, quoteTab(tab)+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("load header row of %q: %w", tab, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return nil, fmt.Errorf("%q: %w", tab, ErrNoHeaderRow)
	}

	headers := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(v))
	}

	c.mu.Lock()
	c.headers[tab] = headers
	c.mu.Unlock()
	return headers, nil
}

// quoteTab оформляет название вкладки для A1-нотации.
func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
