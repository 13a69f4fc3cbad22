package replay

import (
	"encoding/base64"
	"fmt"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var marshalOpts = proto.MarshalOptions{Deterministic: true}

// EncodeEvent wraps fields in a protobuf Struct and returns it with its base64 wire form.
func EncodeEvent(fields map[string]any) (*structpb.Struct, string, error) {
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, "", fmt.Errorf("build event: %w", err)
	}
	raw, err := marshalOpts.Marshal(st)
	if err != nil {
		return nil, "", fmt.Errorf("marshal event: %w", err)
	}
	return st, base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeEvent reverses the base64 form produced by EncodeEvent.
func DecodeEvent(b64 string) (*structpb.Struct, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	st := &structpb.Struct{}
	if err := proto.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return st, nil
}

// The *Value helpers render engine types as structpb-compatible values. The practice
// server frames reuse them.
func CardsValue(cs []card.Card) []any {
	out := make([]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}

func ActionsValue(as []blackjack.Action) []any {
	out := make([]any, 0, len(as))
	for _, a := range as {
		out = append(out, a.String())
	}
	return out
}

func actionNames(as []blackjack.Action) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.String())
	}
	return out
}

func HandsValue(hands []blackjack.HandSnapshot) []any {
	out := make([]any, 0, len(hands))
	for _, h := range hands {
		out = append(out, map[string]any{
			"cards":    CardsValue(h.Cards),
			"total":    h.Total,
			"soft":     h.Soft,
			"doubled":  h.Doubled,
			"complete": h.Complete,
		})
	}
	return out
}

func RecommendationValue(rec blackjack.Recommendation) map[string]any {
	m := map[string]any{
		"action":     rec.Action.String(),
		"basic":      rec.Basic.String(),
		"true_count": rec.TrueCount,
		"can_double": rec.CanDouble,
		"can_split":  rec.CanSplit,
	}
	if rec.Deviation != nil {
		m["deviation"] = rec.Deviation.Name
	}
	return m
}

func SettlementValue(res *blackjack.SettlementResult) map[string]any {
	hands := make([]any, 0, len(res.Hands))
	for _, h := range res.Hands {
		hands = append(hands, map[string]any{
			"slot":    h.Slot,
			"cards":   CardsValue(h.Cards),
			"total":   h.Total,
			"doubled": h.Doubled,
			"outcome": h.Outcome.String(),
			"units":   h.Units,
		})
	}
	return map[string]any{
		"round":        int64(res.Round),
		"dealer_cards": CardsValue(res.DealerCards),
		"dealer_total": res.DealerTotal,
		"dealer_bust":  res.DealerBust,
		"hands":        hands,
		"net_units":    res.NetUnits,
	}
}
