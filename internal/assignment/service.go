package assignment

import (
	"time"

	"refectory/internal/eligibility"
	"refectory/internal/models"
	"refectory/internal/monitoring"
	"refectory/internal/store"
)

// Service runs missing-order detection and bulk assignment against the
// store. All writes of AssignDefaults happen in one transaction: the batch
// fully commits or fully rolls back.
type Service struct {
	store *store.Store
}

// NewService returns a Service over st.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// ListMissing returns the active guests of a diet who still lack a submitted
// order for date. Returns store.ErrNoCycles / store.ErrNoDailyMenu when the
// rotation or menu is unconfigured; callers surface those as "nothing to
// do", not faults.
func (s *Service) ListMissing(date time.Time, diet models.DietKind) ([]models.Guest, error) {
	menu, err := s.store.DailyMenuFor(date, diet)
	if err != nil {
		return nil, err
	}
	required := RequiredMeals(menu.Items)
	if len(required) == 0 {
		return nil, nil
	}
	guests, err := s.store.ActiveGuests(date, diet)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(guests))
	for _, g := range guests {
		ids = append(ids, g.ID)
	}
	ordered, err := s.store.NonEmptyOrderSlots(date, ids)
	if err != nil {
		return nil, err
	}

	var missing []models.Guest
	for _, g := range guests {
		if IsMissing(g, date, required, ordered[g.ID]) {
			missing = append(missing, g)
		}
	}
	monitoring.MissingGuests.WithLabelValues(string(diet)).Set(float64(len(missing)))
	return missing, nil
}

// MissingByDiet runs ListMissing for every diet, skipping diets whose menu
// is not configured.
func (s *Service) MissingByDiet(date time.Time) (map[models.DietKind][]models.Guest, error) {
	result := make(map[models.DietKind][]models.Guest)
	for _, diet := range models.DietKinds {
		missing, err := s.ListMissing(date, diet)
		if err == store.ErrNoCycles {
			return nil, err
		}
		if err == store.ErrNoDailyMenu {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[diet] = missing
	}
	return result, nil
}

// AssignDefaults fills the deficient slots of every missing guest of a diet
// with the supplied selections, or with DefaultSelections when sel is nil.
//
// Per guest and slot the current order state is re-read inside the
// transaction immediately before writing, so a selection saved concurrently
// is never clobbered: slots that are ineligible or already hold a non-empty
// order are left untouched. Invalid selection ids are filtered silently.
// Returns the number of distinct guests that received at least one new
// order; when the menu is unconfigured no writes happen and the store error
// is returned.
func (s *Service) AssignDefaults(date time.Time, diet models.DietKind, sel Selections) (int, error) {
	updated := 0
	err := s.store.Transaction(func(tx *store.Store) error {
		menu, err := tx.DailyMenuFor(date, diet)
		if err != nil {
			return err
		}
		required := RequiredMeals(menu.Items)
		if sel == nil {
			sel = DefaultSelections(menu.Items)
		}
		sel = FilterSelections(sel, menu.Items)
		if sel.Empty() {
			return nil
		}

		guests, err := tx.ActiveGuests(date, diet)
		if err != nil {
			return err
		}
		for _, g := range guests {
			ordered, err := tx.NonEmptyOrderSlotsForGuest(g.ID, date)
			if err != nil {
				return err
			}
			allowed := eligibility.AllowedMeals(g, date)
			created := false
			for _, slot := range models.MealTimes {
				if !required[slot] || !allowed.Allows(slot) || ordered[slot] {
					continue
				}
				ids := sel[slot]
				if len(ids) == 0 {
					continue
				}
				if err := tx.ReplaceOrderItems(g.ID, date, slot, ids); err != nil {
					return err
				}
				created = true
			}
			if created {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	monitoring.AssignedGuests.Add(float64(updated))
	return updated, nil
}
