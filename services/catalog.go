package services

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rates.yaml
var defaultRates []byte

// maxTiers is the number of multi-line tiers a plan can carry (1, 2, 3, 4+ lines).
const maxTiers = 4

// CommissionItem identifies a row in the commission table.
type CommissionItem string

const (
	ItemPremiumLine CommissionItem = "premium_line"
	ItemExtraLine   CommissionItem = "extra_line"
	ItemDataDevice  CommissionItem = "data_device"
	ItemInternet    CommissionItem = "internet"
	ItemPro1        CommissionItem = "pro_1"
	ItemPro4        CommissionItem = "pro_4"
	ItemHTP         CommissionItem = "htp"
	ItemTurbo       CommissionItem = "turbo"
)

var commissionItems = []CommissionItem{
	ItemPremiumLine, ItemExtraLine, ItemDataDevice, ItemInternet,
	ItemPro1, ItemPro4, ItemHTP, ItemTurbo,
}

// Rate is a (base, boosted) pair. Boosted applies when the kicker is unlocked.
type Rate struct {
	Base    float64 `yaml:"base" json:"base"`
	Boosted float64 `yaml:"boosted" json:"boosted"`
}

// For returns the boosted amount when kicker is set, the base amount otherwise.
func (r Rate) For(kicker bool) float64 {
	if kicker {
		return r.Boosted
	}
	return r.Base
}

// PlanRate is one rate plan and its multi-line tiers.
type PlanRate struct {
	Name  string    `yaml:"name" json:"name"`
	Price float64   `yaml:"price" json:"price"`
	Tiers []float64 `yaml:"tiers" json:"tiers"`
}

// DeviceRate is the flat monthly price of a data device class.
type DeviceRate struct {
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

// PotentialTotals are the fixed commission totals shown for the primary carrier.
type PotentialTotals struct {
	Live             Rate `yaml:"live" json:"live"`
	ExportBothDeltas Rate `yaml:"export_both_deltas" json:"export_both_deltas"`
	ExportPartial    Rate `yaml:"export_partial" json:"export_partial"`
}

// InternetPrice is the display-only monthly internet price.
type InternetPrice struct {
	Standard float64 `yaml:"standard" json:"standard"`
	AIA      float64 `yaml:"aia" json:"aia"`
}

// For returns the AIA price when the account is AIA eligible.
func (p InternetPrice) For(aia bool) float64 {
	if aia {
		return p.AIA
	}
	return p.Standard
}

// Catalog holds the static reference tables the engine prices against.
// A Catalog is read-only once loaded and safe for concurrent use.
type Catalog struct {
	FlatRatePlan     string                  `yaml:"flat_rate_plan" json:"flat_rate_plan"`
	PremiumPlan      string                  `yaml:"premium_plan" json:"premium_plan"`
	ValuePlan        string                  `yaml:"value_plan" json:"value_plan"`
	HotspotSurcharge float64                 `yaml:"hotspot_surcharge" json:"hotspot_surcharge"`
	FamilyDiscount   float64                 `yaml:"family_discount" json:"family_discount"`
	AccountDiscount  float64                 `yaml:"account_discount" json:"account_discount"`
	Plans            []PlanRate              `yaml:"plans" json:"plans"`
	Devices          []DeviceRate            `yaml:"devices" json:"devices"`
	Commissions      map[CommissionItem]Rate `yaml:"commissions" json:"commissions"`
	Totals           PotentialTotals         `yaml:"potential_totals" json:"potential_totals"`
	Internet         InternetPrice           `yaml:"internet" json:"internet"`

	plans   map[string]PlanRate
	devices map[string]float64
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the built-in rate table.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultRates)
		if err != nil {
			panic(fmt.Sprintf("services: embedded rate table: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a rate table from a YAML file. An empty path returns the
// built-in table.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table %s: %w", path, err)
	}
	c, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("rate table %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML rate table.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode rate table: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Validate checks the semantic constraints of a rate table and reports every
// problem found.
func (c *Catalog) Validate() error {
	var errs []string

	seen := make(map[string]bool, len(c.Plans))
	for i, p := range c.Plans {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("plans[%d].name is required", i))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("plans[%d].name %q is duplicated", i, p.Name))
		}
		seen[p.Name] = true
		if p.Price < 0 {
			errs = append(errs, fmt.Sprintf("plans[%d].price must be >= 0", i))
		}
		if len(p.Tiers) > maxTiers {
			errs = append(errs, fmt.Sprintf("plans[%d].tiers must have at most %d entries", i, maxTiers))
		}
		for j, t := range p.Tiers {
			if t < 0 {
				errs = append(errs, fmt.Sprintf("plans[%d].tiers[%d] must be >= 0", i, j))
			}
		}
	}
	for i, d := range c.Devices {
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Sprintf("devices[%d].name is required", i))
		}
		if d.Price < 0 {
			errs = append(errs, fmt.Sprintf("devices[%d].price must be >= 0", i))
		}
	}

	for _, ref := range []struct{ field, name string }{
		{"flat_rate_plan", c.FlatRatePlan},
		{"premium_plan", c.PremiumPlan},
		{"value_plan", c.ValuePlan},
	} {
		if ref.name == "" {
			errs = append(errs, ref.field+" is required")
		} else if !seen[ref.name] {
			errs = append(errs, fmt.Sprintf("%s %q is not a listed plan", ref.field, ref.name))
		}
	}

	if c.HotspotSurcharge < 0 {
		errs = append(errs, "hotspot_surcharge must be >= 0")
	}
	if c.FamilyDiscount <= 0 || c.FamilyDiscount > 1 {
		errs = append(errs, "family_discount must be in (0,1]")
	}
	if c.AccountDiscount <= 0 || c.AccountDiscount > 1 {
		errs = append(errs, "account_discount must be in (0,1]")
	}
	for _, item := range commissionItems {
		r, ok := c.Commissions[item]
		if !ok {
			errs = append(errs, fmt.Sprintf("commissions.%s is required", item))
			continue
		}
		if r.Base < 0 || r.Boosted < 0 {
			errs = append(errs, fmt.Sprintf("commissions.%s must be >= 0", item))
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid rate table: " + strings.Join(errs, "; "))
	}
	return nil
}

func (c *Catalog) index() {
	c.plans = make(map[string]PlanRate, len(c.Plans))
	for _, p := range c.Plans {
		c.plans[p.Name] = p
	}
	c.devices = make(map[string]float64, len(c.Devices))
	for _, d := range c.Devices {
		c.devices[d.Name] = d.Price
	}
}

// PlanPrice returns the single-line price of a plan, or 0 when unknown.
func (c *Catalog) PlanPrice(label string) float64 {
	return c.plans[label].Price
}

// DevicePrice returns the monthly price of a data device class, or 0 when unknown.
func (c *Catalog) DevicePrice(label string) float64 {
	return c.devices[label]
}

// IsPlan reports whether label is a listed rate plan.
func (c *Catalog) IsPlan(label string) bool {
	_, ok := c.plans[label]
	return ok
}

// IsDevice reports whether label is a listed data device class.
func (c *Catalog) IsDevice(label string) bool {
	_, ok := c.devices[label]
	return ok
}

// TierPrice returns the per-line price of a plan when count billable phone
// lines share the account. Counts of 4 or more use the last tier. A plan with
// no tiers uses its single-line price; a short tier list falls back to its
// first entry.
func (c *Catalog) TierPrice(label string, count int) float64 {
	if label == "" || count <= 0 {
		return 0
	}
	p, ok := c.plans[label]
	if !ok {
		return 0
	}
	if len(p.Tiers) == 0 {
		return p.Price
	}
	idx := min(count-1, maxTiers-1)
	if idx >= len(p.Tiers) {
		return p.Tiers[0]
	}
	return p.Tiers[idx]
}

// Commission returns the commission for one unit of item.
func (c *Catalog) Commission(item CommissionItem, kicker bool) float64 {
	return c.Commissions[item].For(kicker)
}

// PlanNames returns the plan names in table order.
func (c *Catalog) PlanNames() []string {
	names := make([]string, 0, len(c.Plans))
	for _, p := range c.Plans {
		names = append(names, p.Name)
	}
	return names
}

// DeviceNames returns the data device classes in table order.
func (c *Catalog) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for _, d := range c.Devices {
		names = append(names, d.Name)
	}
	return names
}
