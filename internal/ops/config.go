// Package ops loads the runtime configuration: input/output directories,
// the security master joining CUSIPs to maturities, sector buckets for
// risk aggregation, and stage policies.
package ops

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yanun0323/errors"

	"main/internal/model"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Input      string           `json:"input"`
	Output     string           `json:"output"`
	GUI        GUIConfig        `json:"gui"`
	Algo       AlgoConfig       `json:"algo"`
	Securities []SecurityConfig `json:"securities"`
	Sectors    []SectorConfig   `json:"sectors"`
}

// GUIConfig throttles the GUI price tap.
type GUIConfig struct {
	ThrottleMillis int64 `json:"throttleMillis"`
	MaxTicks       int   `json:"maxTicks"`
}

// Throttle returns the minimum spacing between GUI records.
func (g GUIConfig) Throttle() time.Duration {
	return time.Duration(g.ThrottleMillis) * time.Millisecond
}

// AlgoConfig defines the algo-execution policy.
type AlgoConfig struct {
	// MaxSpreadTicks gates order generation: an execution fires only
	// when bestOffer - bestBid is at most this many 1/256 ticks.
	MaxSpreadTicks int64 `json:"maxSpreadTicks"`

	// AggressNatural chooses the price convention. Natural aggression
	// pays the best offer when buying and hits the best bid when
	// selling; legacy mode swaps the two.
	AggressNatural bool `json:"aggressNatural"`
}

// SecurityConfig describes one entry of the security master.
type SecurityConfig struct {
	CUSIP    string  `json:"cusip"`
	Ticker   string  `json:"ticker"`
	Coupon   float64 `json:"coupon"`
	Maturity string  `json:"maturity"`
}

// SectorConfig names a risk bucket and its members.
type SectorConfig struct {
	Name   string   `json:"name"`
	CUSIPs []string `json:"cusips"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Input      string
	Output     string
	GUI        GUIConfig
	Algo       AlgoConfig
	Securities *SecurityMaster
	Sectors    []model.BucketedSector
}

// Load reads and resolves a JSON config file.
func Load(path string) (Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrap(err, "read config")
	}
	var cfg FileConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "parse config")
	}
	return Resolve(cfg)
}

// Resolve validates a FileConfig and builds the runtime view.
func Resolve(cfg FileConfig) (Loaded, error) {
	if cfg.Input == "" {
		cfg.Input = "input"
	}
	if cfg.Output == "" {
		cfg.Output = "output"
	}
	if cfg.GUI.ThrottleMillis <= 0 {
		cfg.GUI.ThrottleMillis = 300
	}
	if cfg.GUI.MaxTicks <= 0 {
		cfg.GUI.MaxTicks = 100
	}
	if cfg.Algo.MaxSpreadTicks <= 0 {
		cfg.Algo.MaxSpreadTicks = 4
	}
	if len(cfg.Securities) == 0 {
		return Loaded{}, errors.Errorf("config: no securities")
	}

	master := NewSecurityMaster()
	for _, sec := range cfg.Securities {
		maturity, err := time.Parse("2006-01-02", sec.Maturity)
		if err != nil {
			return Loaded{}, errors.Wrap(err, "parse maturity").With("cusip", sec.CUSIP)
		}
		if err := master.Add(model.Bond{
			ProductID: sec.CUSIP,
			IDType:    model.IDTypeCUSIP,
			Ticker:    sec.Ticker,
			Coupon:    sec.Coupon,
			Maturity:  maturity,
		}); err != nil {
			return Loaded{}, err
		}
	}

	sectors := make([]model.BucketedSector, 0, len(cfg.Sectors))
	for _, sector := range cfg.Sectors {
		bucket := model.BucketedSector{Name: sector.Name}
		for _, cusip := range sector.CUSIPs {
			bond, ok := master.Lookup(cusip)
			if !ok {
				return Loaded{}, errors.Errorf("config: sector %s references unknown CUSIP %s", sector.Name, cusip)
			}
			bucket.Products = append(bucket.Products, bond)
		}
		sectors = append(sectors, bucket)
	}

	return Loaded{
		Input:      cfg.Input,
		Output:     cfg.Output,
		GUI:        cfg.GUI,
		Algo:       cfg.Algo,
		Securities: master,
		Sectors:    sectors,
	}, nil
}

// Default returns the shipped configuration: the six on-the-run CUSIPs
// and the FrontEnd/Belly/LongEnd buckets.
func Default() Loaded {
	loaded, err := Resolve(FileConfig{
		Algo:       AlgoConfig{AggressNatural: true},
		Securities: defaultSecurities,
		Sectors:    defaultSectors,
	})
	if err != nil {
		panic(err)
	}
	return loaded
}

var defaultSecurities = []SecurityConfig{
	{CUSIP: "9128285Q9", Ticker: "T", Coupon: 2.75, Maturity: "2020-11-30"},
	{CUSIP: "9128285R7", Ticker: "T", Coupon: 2.625, Maturity: "2021-12-15"},
	{CUSIP: "9128285P1", Ticker: "T", Coupon: 2.875, Maturity: "2023-11-30"},
	{CUSIP: "9128285N6", Ticker: "T", Coupon: 2.875, Maturity: "2025-11-30"},
	{CUSIP: "9128285M8", Ticker: "T", Coupon: 3.125, Maturity: "2028-12-15"},
	{CUSIP: "912810SE9", Ticker: "T", Coupon: 3.375, Maturity: "2048-11-15"},
}

var defaultSectors = []SectorConfig{
	{Name: "FrontEnd", CUSIPs: []string{"9128285Q9", "9128285R7"}},
	{Name: "Belly", CUSIPs: []string{"9128285P1", "9128285N6", "9128285M8"}},
	{Name: "LongEnd", CUSIPs: []string{"912810SE9"}},
}
