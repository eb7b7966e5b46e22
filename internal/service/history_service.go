package service

import (
	"context"
	"time"

	"care-tracker/internal/careday"
	"care-tracker/internal/repository"
)

// CellStatus is one grid cell's resolved value.
type CellStatus string

const (
	// CellNA marks days before the care item existed.
	CellNA CellStatus = "n/a"
	// CellGiven marks days the item resolves to completed.
	CellGiven CellStatus = "given"
	// CellMissed marks applicable days with no surviving completion.
	CellMissed CellStatus = "missed"
)

// GridColumn is one active care item, annotated for display.
type GridColumn struct {
	CareItemID uint
	Name       string
	PetName    string
	// CreatedDay is the item's creation care day, the first day for
	// which a cell can be anything other than n/a.
	CreatedDay time.Time
}

// GridRow is one care day's cells, keyed by care item id.
type GridRow struct {
	Day   time.Time
	Cells map[uint]CellStatus
}

// Grid is the paged day-by-item history matrix. Rows run newest first;
// page 1 starts at today's care day.
type Grid struct {
	Columns  []GridColumn
	Rows     []GridRow
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
}

// HistoryService builds the paginated history grid.
type HistoryService struct {
	petRepo  *repository.PetRepository
	itemRepo *repository.CareItemRepository
	logRepo  *repository.TaskLogRepository
	days     *careday.Calculator
	now      func() time.Time
}

func NewHistoryService(petRepo *repository.PetRepository, itemRepo *repository.CareItemRepository, logRepo *repository.TaskLogRepository, days *careday.Calculator) *HistoryService {
	return &HistoryService{
		petRepo:  petRepo,
		itemRepo: itemRepo,
		logRepo:  logRepo,
		days:     days,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *HistoryService) SetClock(now func() time.Time) {
	s.now = now
}

type cellKey struct {
	day  string
	item uint
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// Grid builds one page of the history matrix. Status for the whole page
// is resolved from a single batched log fetch over the page's care-day
// range rather than item-by-item queries: a page spans many items times
// many days.
func (s *HistoryService) Grid(ctx context.Context, page, pageSize int) (*Grid, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 30
	}

	today := s.days.DayFor(s.now())
	startOffset := (page - 1) * pageSize

	days := make([]time.Time, pageSize)
	for i := range days {
		days[i] = today.AddDate(0, 0, -(startOffset + i))
	}
	newestDay := days[0]
	oldestDay := days[len(days)-1]

	columns, err := s.columns(ctx)
	if err != nil {
		return nil, err
	}

	grid := &Grid{
		Columns:  columns,
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
	}
	if len(columns) == 0 {
		return grid, nil
	}

	logs, err := s.logRepo.ListByCareDayRange(ctx, oldestDay, newestDay)
	if err != nil {
		return nil, err
	}

	// Entries arrive oldest first by (timestamp, id), so the last write
	// for each (day, item) pair wins the map slot.
	statuses := make(map[cellKey]bool, len(logs))
	for _, entry := range logs {
		statuses[cellKey{day: dayKey(careday.Truncate(entry.CareDay)), item: entry.CareItemID}] = entry.Completed()
	}

	grid.Rows = make([]GridRow, 0, len(days))
	for _, day := range days {
		cells := make(map[uint]CellStatus, len(columns))
		for _, col := range columns {
			switch {
			case day.Before(col.CreatedDay):
				cells[col.CareItemID] = CellNA
			case statuses[cellKey{day: dayKey(day), item: col.CareItemID}]:
				cells[col.CareItemID] = CellGiven
			default:
				cells[col.CareItemID] = CellMissed
			}
		}
		grid.Rows = append(grid.Rows, GridRow{Day: day, Cells: cells})
	}

	grid.HasNext, err = s.hasOlderHistory(ctx, oldestDay)
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// columns lists the active care items of active pets, ordered by pet
// then display order.
func (s *HistoryService) columns(ctx context.Context) ([]GridColumn, error) {
	pets, err := s.petRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var columns []GridColumn
	for _, pet := range pets {
		items, err := s.itemRepo.ListActive(ctx, pet.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			columns = append(columns, GridColumn{
				CareItemID: item.ID,
				Name:       item.Name,
				PetName:    pet.Name,
				CreatedDay: s.days.DayFor(item.CreatedAt),
			})
		}
	}
	return columns, nil
}

// hasOlderHistory decides whether another page exists past oldestDay.
// Normally that means an older log entry; before anything has ever been
// logged it falls back to the earliest pet's creation care day so the
// grid stays navigable.
func (s *HistoryService) hasOlderHistory(ctx context.Context, oldestDay time.Time) (bool, error) {
	earliest, err := s.logRepo.EarliestCareDay(ctx)
	if err != nil {
		return false, err
	}
	if earliest != nil {
		return careday.Truncate(*earliest).Before(oldestDay), nil
	}

	pet, err := s.petRepo.EarliestCreated(ctx)
	if err != nil {
		return false, err
	}
	if pet == nil {
		return false, nil
	}
	return s.days.DayFor(pet.CreatedAt).Before(oldestDay), nil
}
