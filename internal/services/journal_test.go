package services

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ereport-admin/internal/entities"
	"ereport-admin/pkg/utils"
)

func TestJournalService_ExportKeepsFiltersAndDropsPaging(t *testing.T) {
	deadline := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRemote[entities.DelayReport]{items: []entities.DelayReport{
		{ID: 1, BulletinName: "Цены", OrganizationName: "Минфин", Period: "2024-01", Deadline: deadline, DelayDays: 4},
		{ID: 2, BulletinName: "Объём", OrganizationName: "Минэко", Period: "2024-01", Deadline: deadline, DelayDays: 1},
	}}
	svc := NewJournalService("delay_reports", repo, DelayReportColumns, zap.NewNop())

	q := url.Values{"organization": {"3"}, "page": {"4"}}
	params := utils.ParseListParams(q, utils.ListOptions{Filters: DelayReportFilters})
	wb, err := svc.Export(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "3", repo.lastQuery.Get("organization"))
	assert.Empty(t, repo.lastQuery.Get("offset"))
	assert.Equal(t, 2, wb.Rows)
	assert.Contains(t, wb.FileName, "delay_reports_")

	f, err := excelize.OpenReader(bytes.NewReader(wb.Data.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Бюллетень", rows[0][0])
	assert.Equal(t, "Цены", rows[1][0])
	assert.Equal(t, "10.02.2024 00:00", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "4", rows[1][5])
}

func TestJournalService_ListAndCount(t *testing.T) {
	repo := &fakeRemote[entities.LogItem]{items: []entities.LogItem{{ID: 1, Action: "login"}}, count: 77}
	svc := NewJournalService("logs", repo, LogColumns, zap.NewNop())

	params := utils.ParseListParams(url.Values{"action": {"login"}}, utils.ListOptions{Filters: LogFilters})
	res, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "login", repo.lastQuery.Get("action"))
	assert.Equal(t, 77, res.Paginator.Count)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 77, n)
}

func TestBuildWorkbook_EmptyRows(t *testing.T) {
	wb, err := BuildWorkbook("logs", []string{"Дата", "Действие"}, nil)
	require.NoError(t, err)
	assert.Zero(t, wb.Rows)
	assert.NotZero(t, wb.Data.Len())
}
