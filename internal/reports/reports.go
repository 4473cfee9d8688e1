// Package reports aggregates the day's orders into the waiter and kitchen
// summaries. Aggregation only; layout and printing belong to the callers.
package reports

import (
	"fmt"
	"sort"
	"strings"

	"refectory/internal/models"
)

// Seat is where a guest sits on the report date.
type Seat struct {
	Table int
	Place int
}

// SeatsByGuest indexes the day's seat assignments for the aggregators.
// Guests without a seat on the date are skipped by every report.
func SeatsByGuest(seats []models.SeatAssignment) map[uint]Seat {
	m := make(map[uint]Seat, len(seats))
	for _, s := range seats {
		m[s.GuestID] = Seat{Table: s.Table.Number, Place: s.PlaceNumber}
	}
	return m
}

// WaiterRow is one line of the compact waiter sheet:
// dish, portion count, and the "table(places)" runs, e.g. "50(1,2,3); 72(1,4)".
type WaiterRow struct {
	DishName string `json:"dish"`
	Total    int    `json:"total"`
	Tables   string `json:"tables"`
}

// WaiterBlock groups the rows of one meal slot.
type WaiterBlock struct {
	Meal models.MealTime `json:"meal"`
	Rows []WaiterRow     `json:"rows"`
}

// WaiterCompact builds the waiter sheet for the given orders, restricted to
// tables in [tableFrom, tableTo]. A dish is counted once per occupied place.
func WaiterCompact(orders []models.Order, seats map[uint]Seat, tableFrom, tableTo int) []WaiterBlock {
	type entry struct {
		name   string
		total  int
		tables map[int]map[int]bool // table -> places
	}
	perMeal := make(map[models.MealTime]map[uint]*entry)

	for _, order := range orders {
		seat, ok := seats[order.GuestID]
		if !ok {
			continue
		}
		if seat.Table < tableFrom || seat.Table > tableTo {
			continue
		}
		for _, oi := range order.Items {
			dishes := perMeal[order.MealTime]
			if dishes == nil {
				dishes = make(map[uint]*entry)
				perMeal[order.MealTime] = dishes
			}
			e := dishes[oi.MenuItem.DishID]
			if e == nil {
				e = &entry{
					name:   oi.MenuItem.Dish.KitchenName(),
					tables: make(map[int]map[int]bool),
				}
				dishes[oi.MenuItem.DishID] = e
			}
			places := e.tables[seat.Table]
			if places == nil {
				places = make(map[int]bool)
				e.tables[seat.Table] = places
			}
			if !places[seat.Place] {
				places[seat.Place] = true
				e.total++
			}
		}
	}

	var blocks []WaiterBlock
	for _, meal := range models.MealTimes {
		dishes := perMeal[meal]
		if len(dishes) == 0 {
			continue
		}
		rows := make([]WaiterRow, 0, len(dishes))
		for _, e := range dishes {
			rows = append(rows, WaiterRow{
				DishName: e.name,
				Total:    e.total,
				Tables:   formatTables(e.tables),
			})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].DishName < rows[j].DishName })
		blocks = append(blocks, WaiterBlock{Meal: meal, Rows: rows})
	}
	return blocks
}

func formatTables(tables map[int]map[int]bool) string {
	nums := make([]int, 0, len(tables))
	for n := range tables {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		places := make([]int, 0, len(tables[n]))
		for p := range tables[n] {
			places = append(places, p)
		}
		sort.Ints(places)
		strs := make([]string, len(places))
		for i, p := range places {
			strs[i] = fmt.Sprintf("%d", p)
		}
		parts = append(parts, fmt.Sprintf("%d(%s)", n, strings.Join(strs, ",")))
	}
	return strings.Join(parts, "; ")
}

// DishSummary is the kitchen view of one dish: total portions, the per-meal
// breakdown, and which tables receive it.
type DishSummary struct {
	DishName string                  `json:"dish"`
	Total    int                     `json:"total"`
	ByMeal   map[models.MealTime]int `json:"by_meal"`
	Tables   []int                   `json:"tables"`
}

// KitchenSummary builds the per-dish portion counts for the kitchen. Every
// order item of a seated guest counts as one portion.
func KitchenSummary(orders []models.Order, seats map[uint]Seat) []DishSummary {
	type entry struct {
		name   string
		total  int
		byMeal map[models.MealTime]int
		tables map[int]bool
	}
	byDish := make(map[uint]*entry)

	for _, order := range orders {
		seat, ok := seats[order.GuestID]
		if !ok {
			continue
		}
		for _, oi := range order.Items {
			e := byDish[oi.MenuItem.DishID]
			if e == nil {
				e = &entry{
					name:   oi.MenuItem.Dish.KitchenName(),
					byMeal: make(map[models.MealTime]int),
					tables: make(map[int]bool),
				}
				byDish[oi.MenuItem.DishID] = e
			}
			e.total++
			e.byMeal[order.MealTime]++
			e.tables[seat.Table] = true
		}
	}

	summaries := make([]DishSummary, 0, len(byDish))
	for _, e := range byDish {
		tables := make([]int, 0, len(e.tables))
		for n := range e.tables {
			tables = append(tables, n)
		}
		sort.Ints(tables)
		summaries = append(summaries, DishSummary{
			DishName: e.name,
			Total:    e.total,
			ByMeal:   e.byMeal,
			Tables:   tables,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].DishName < summaries[j].DishName })
	return summaries
}
