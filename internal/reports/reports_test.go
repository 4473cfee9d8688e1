package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refectory/internal/models"
)

func order(guestID uint, meal models.MealTime, dishes ...models.Dish) models.Order {
	o := models.Order{GuestID: guestID, MealTime: meal}
	for _, d := range dishes {
		o.Items = append(o.Items, models.OrderItem{
			MenuItem: models.MenuItem{DishID: d.ID, Dish: d},
		})
	}
	return o
}

func dish(id uint, name, short string) models.Dish {
	d := models.Dish{Name: name, ShortName: short}
	d.ID = id
	return d
}

func TestWaiterCompact(t *testing.T) {
	soup := dish(1, "Chicken noodle soup", "Soup")
	stew := dish(2, "Beef stew", "")

	seats := map[uint]Seat{
		10: {Table: 50, Place: 1},
		11: {Table: 50, Place: 2},
		12: {Table: 72, Place: 4},
		13: {Table: 3, Place: 1}, // outside the requested range
	}
	orders := []models.Order{
		order(10, models.MealLunch, soup),
		order(11, models.MealLunch, soup),
		order(12, models.MealLunch, soup, stew),
		order(13, models.MealLunch, soup),
		order(99, models.MealLunch, soup), // unseated guest dropped
	}

	blocks := WaiterCompact(orders, seats, 21, 100)
	require.Len(t, blocks, 1)
	assert.Equal(t, models.MealLunch, blocks[0].Meal)
	require.Len(t, blocks[0].Rows, 2)

	// Rows sorted by dish name; short names used where present.
	assert.Equal(t, "Beef stew", blocks[0].Rows[0].DishName)
	assert.Equal(t, 1, blocks[0].Rows[0].Total)
	assert.Equal(t, "72(4)", blocks[0].Rows[0].Tables)

	assert.Equal(t, "Soup", blocks[0].Rows[1].DishName)
	assert.Equal(t, 3, blocks[0].Rows[1].Total)
	assert.Equal(t, "50(1,2); 72(4)", blocks[0].Rows[1].Tables)
}

func TestWaiterCompactCountsPlaceOnce(t *testing.T) {
	soup := dish(1, "Soup", "")
	seats := map[uint]Seat{10: {Table: 5, Place: 2}}
	// The same dish twice in one order still serves one place.
	orders := []models.Order{order(10, models.MealLunch, soup, soup)}

	blocks := WaiterCompact(orders, seats, 1, 100)
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Rows[0].Total)
}

func TestKitchenSummary(t *testing.T) {
	soup := dish(1, "Soup", "")
	roast := dish(2, "Roast", "")

	seats := map[uint]Seat{
		10: {Table: 5, Place: 1},
		11: {Table: 9, Place: 3},
	}
	orders := []models.Order{
		order(10, models.MealLunch, soup),
		order(11, models.MealLunch, soup),
		order(10, models.MealDinner, roast),
	}

	summary := KitchenSummary(orders, seats)
	require.Len(t, summary, 2)

	assert.Equal(t, "Roast", summary[0].DishName)
	assert.Equal(t, 1, summary[0].Total)
	assert.Equal(t, []int{5}, summary[0].Tables)

	assert.Equal(t, "Soup", summary[1].DishName)
	assert.Equal(t, 2, summary[1].Total)
	assert.Equal(t, 2, summary[1].ByMeal[models.MealLunch])
	assert.Equal(t, []int{5, 9}, summary[1].Tables)
}
