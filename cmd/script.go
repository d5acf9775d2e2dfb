package cmd

import (
	"fmt"
	"strings"

	"github.com/defibasket/basket"
)

// scriptFlag collects repeated -step flags into a script.
//
// Each step reads "bridge:assetIn:percent[:key=value[;key=value]]", e.g.
//
//	-step "wrap:native:100%"
//	-step "swap:weth:50%:out=usdc"
type scriptFlag struct {
	script basket.Script
}

func (s *scriptFlag) String() string {
	parts := make([]string, 0, s.script.Len())
	for i, bridge := range s.script.Bridges {
		call := s.script.Calls[i]
		parts = append(parts, fmt.Sprintf("%s:%s:%s", bridge, call.AssetIn, call.PercentIn))
	}
	return strings.Join(parts, " ")
}

func (s *scriptFlag) Set(value string) error {
	fields := strings.SplitN(value, ":", 4)
	if len(fields) < 3 {
		return fmt.Errorf("step %q: want bridge:assetIn:percent[:params]", value)
	}
	percent, err := basket.ParsePercent(fields[2])
	if err != nil {
		return fmt.Errorf("step %q: %w", value, err)
	}

	call := basket.Call{AssetIn: basket.AssetID(fields[1]), PercentIn: percent}
	if len(fields) == 4 && fields[3] != "" {
		call.Params = make(map[string]string)
		for _, pair := range strings.Split(fields[3], ";") {
			key, val, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("step %q: parameter %q is not key=value", value, pair)
			}
			call.Params[key] = val
		}
	}

	s.script.Bridges = append(s.script.Bridges, basket.BridgeID(fields[0]))
	s.script.Calls = append(s.script.Calls, call)
	return nil
}

// fundsFlag collects repeated asset:amount flags into parallel slices, the
// shape funding and withdrawal take.
type fundsFlag struct {
	assets  []basket.AssetID
	amounts []basket.Amount
}

func (ff *fundsFlag) String() string {
	parts := make([]string, 0, len(ff.assets))
	for i, asset := range ff.assets {
		parts = append(parts, fmt.Sprintf("%s:%s", asset, ff.amounts[i]))
	}
	return strings.Join(parts, " ")
}

func (ff *fundsFlag) Set(value string) error {
	asset, raw, found := strings.Cut(value, ":")
	if !found || asset == "" {
		return fmt.Errorf("fund %q: want asset:amount", value)
	}
	amount, err := basket.ParseAmount(raw)
	if err != nil {
		return fmt.Errorf("fund %q: %w", value, err)
	}
	ff.assets = append(ff.assets, basket.AssetID(asset))
	ff.amounts = append(ff.amounts, amount)
	return nil
}
