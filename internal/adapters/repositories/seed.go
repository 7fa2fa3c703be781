package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ProductSeed struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

type RestaurantSeed struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type MenuEntrySeed struct {
	RestaurantID int   `json:"restaurant_id"`
	ProductID    int   `json:"product_id"`
	Availability *bool `json:"availability"`
}

type OrderLineSeed struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderSeed struct {
	OrderID   int             `json:"order_id"`
	FirstName string          `json:"firstname"`
	LastName  string          `json:"lastname"`
	Phone     string          `json:"phonenumber"`
	Address   string          `json:"address"`
	Status    string          `json:"status"`
	Lines     []OrderLineSeed `json:"lines"`
}

// Seed is the layout of the JSON seed file.
type Seed struct {
	Products    []ProductSeed    `json:"products"`
	Restaurants []RestaurantSeed `json:"restaurants"`
	Menu        []MenuEntrySeed  `json:"menu"`
	Orders      []OrderSeed      `json:"orders"`
}

// Validate checks ids and required fields before anything is written.
func (s *Seed) Validate() error {
	for i, p := range s.Products {
		if p.ProductID <= 0 {
			return fmt.Errorf("seed: invalid product_id at index %d: %d", i+1, p.ProductID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed: product %d: name cannot be empty", p.ProductID)
		}
	}
	for i, r := range s.Restaurants {
		if r.RestaurantID <= 0 {
			return fmt.Errorf("seed: invalid restaurant_id at index %d: %d", i+1, r.RestaurantID)
		}
	}

	seenMenu := make(map[[2]int]struct{}, len(s.Menu))
	for i, m := range s.Menu {
		key := [2]int{m.RestaurantID, m.ProductID}
		if _, ok := seenMenu[key]; ok {
			return fmt.Errorf("seed: duplicate menu entry at index %d: restaurant %d product %d", i+1, m.RestaurantID, m.ProductID)
		}
		seenMenu[key] = struct{}{}
	}

	for i, o := range s.Orders {
		if o.OrderID <= 0 {
			return fmt.Errorf("seed: invalid order_id at index %d: %d", i+1, o.OrderID)
		}
		if strings.TrimSpace(o.Address) == "" {
			return fmt.Errorf("seed: order %d: address cannot be empty", o.OrderID)
		}
		for j, l := range o.Lines {
			if l.Quantity <= 0 || l.Quantity > 100 {
				return fmt.Errorf("seed: order %d line %d: quantity must be between 1 and 100", o.OrderID, j+1)
			}
		}
	}

	return nil
}

// Populate the database with menu and order data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	if err := data.Validate(); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range data.Products {
		if _, err := tx.Exec(`
		INSERT INTO products (product_id, name) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET name = EXCLUDED.name;
		`, p.ProductID, strings.TrimSpace(p.Name)); err != nil {
			return fmt.Errorf("seed: insert product_id=%d: %w", p.ProductID, err)
		}
	}

	for _, r := range data.Restaurants {
		if _, err := tx.Exec(`
		INSERT INTO restaurants (restaurant_id, name, address, contact_phone) VALUES ($1, $2, $3, $4)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address, contact_phone = EXCLUDED.contact_phone;
		`, r.RestaurantID, r.Name, strings.TrimSpace(r.Address), r.ContactPhone); err != nil {
			return fmt.Errorf("seed: insert restaurant_id=%d: %w", r.RestaurantID, err)
		}
	}

	for _, m := range data.Menu {
		available := true
		if m.Availability != nil {
			available = *m.Availability
		}
		if _, err := tx.Exec(`
		INSERT INTO menu_entries (restaurant_id, product_id, availability) VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id) DO UPDATE SET availability = EXCLUDED.availability;
		`, m.RestaurantID, m.ProductID, available); err != nil {
			return fmt.Errorf("seed: insert menu entry restaurant_id=%d product_id=%d: %w", m.RestaurantID, m.ProductID, err)
		}
	}

	for _, o := range data.Orders {
		status := o.Status
		if status == "" {
			status = "in_progress"
		}
		if _, err := tx.Exec(`
		INSERT INTO orders (order_id, firstname, lastname, phonenumber, address, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO UPDATE
		SET firstname = EXCLUDED.firstname, lastname = EXCLUDED.lastname,
			phonenumber = EXCLUDED.phonenumber, address = EXCLUDED.address, status = EXCLUDED.status;
		`, o.OrderID, o.FirstName, o.LastName, o.Phone, strings.TrimSpace(o.Address), status); err != nil {
			return fmt.Errorf("seed: insert order_id=%d: %w", o.OrderID, err)
		}

		// Lines are replaced wholesale so re-seeding stays idempotent.
		if _, err := tx.Exec(`DELETE FROM order_lines WHERE order_id = $1;`, o.OrderID); err != nil {
			return fmt.Errorf("seed: clear lines order_id=%d: %w", o.OrderID, err)
		}
		for _, l := range o.Lines {
			if _, err := tx.Exec(`
			INSERT INTO order_lines (order_id, product_id, quantity) VALUES ($1, $2, $3);
			`, o.OrderID, l.ProductID, l.Quantity); err != nil {
				return fmt.Errorf("seed: insert line order_id=%d product_id=%d: %w", o.OrderID, l.ProductID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
