// Package codec frames practice-table traffic as binary protobuf messages. Every frame
// is a google.protobuf.Struct so clients only need the well-known types.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blackjack-lite/blackjack"
	"blackjack-lite/replay"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client message types.
const (
	ClientJoin       = "join"
	ClientDeal       = "deal"
	ClientAction     = "action"
	ClientCheckCount = "check_count"
	ClientReset      = "reset"
	ClientEndSession = "end_session"
	ClientSaveRetry  = "save_retry"
)

// Server frame types.
const (
	ServerSnapshot   = "snapshot"
	ServerDecision   = "decision"
	ServerSettlement = "settlement"
	ServerCountCheck = "count_check"
	ServerSummary    = "summary"
	ServerWarning    = "warning"
	ServerError      = "error"
)

var ErrUnknownMessage = errors.New("unknown message type")

var marshalOpts = proto.MarshalOptions{Deterministic: true}

// ClientMessage is a decoded request from the browser.
type ClientMessage struct {
	Type   string
	Action blackjack.Action
	// Value carries the raw count for check_count.
	Value string
	// Mode is only read on join.
	Mode string
}

// Envelope is a decoded server frame.
type Envelope struct {
	TableID string
	Seq     uint64
	TsMs    int64
	Type    string
	Payload *structpb.Struct
}

func DecodeClient(data []byte) (ClientMessage, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(data, st); err != nil {
		return ClientMessage{}, fmt.Errorf("invalid message format: %w", err)
	}
	fields := st.GetFields()
	msg := ClientMessage{
		Type:  strings.TrimSpace(fields["type"].GetStringValue()),
		Value: valueString(fields["value"]),
		Mode:  fields["mode"].GetStringValue(),
	}
	switch msg.Type {
	case ClientJoin, ClientDeal, ClientCheckCount, ClientReset, ClientEndSession, ClientSaveRetry:
	case ClientAction:
		a, err := blackjack.ParseAction(fields["action"].GetStringValue())
		if err != nil {
			return msg, err
		}
		msg.Action = a
	default:
		return msg, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return msg, nil
}

// valueString accepts the count either as a string or as a JSON number.
func valueString(v *structpb.Value) string {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return fmt.Sprintf("%g", k.NumberValue)
	}
	return ""
}

// EncodeClient is the inverse of DecodeClient, used by bots and tests.
func EncodeClient(msg ClientMessage) ([]byte, error) {
	fields := map[string]any{"type": msg.Type}
	if msg.Type == ClientAction {
		fields["action"] = msg.Action.String()
	}
	if msg.Value != "" {
		fields["value"] = msg.Value
	}
	if msg.Mode != "" {
		fields["mode"] = msg.Mode
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return marshalOpts.Marshal(st)
}

func EncodeServer(tableID string, seq uint64, typ string, payload map[string]any) ([]byte, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	st, err := structpb.NewStruct(map[string]any{
		"table_id": tableID,
		"seq":      float64(seq),
		"ts_ms":    float64(time.Now().UnixMilli()),
		"type":     typ,
		"payload":  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s frame: %w", typ, err)
	}
	return marshalOpts.Marshal(st)
}

func DecodeServer(data []byte) (Envelope, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(data, st); err != nil {
		return Envelope{}, err
	}
	f := st.GetFields()
	return Envelope{
		TableID: f["table_id"].GetStringValue(),
		Seq:     uint64(f["seq"].GetNumberValue()),
		TsMs:    int64(f["ts_ms"].GetNumberValue()),
		Type:    f["type"].GetStringValue(),
		Payload: f["payload"].GetStructValue(),
	}, nil
}

// SnapshotPayload renders the table for the player. With showCount false the count
// fields are left out so the player keeps the count themselves.
func SnapshotPayload(s blackjack.Snapshot, mode blackjack.Mode, showCount bool) map[string]any {
	m := map[string]any{
		"round":         int64(s.Round),
		"phase":         s.Phase.String(),
		"mode":          string(mode),
		"dealer_cards":  replay.CardsValue(s.DealerCards),
		"dealer_total":  s.DealerTotal,
		"hands":         replay.HandsValue(s.Hands),
		"active_hand":   s.ActiveHand,
		"legal_actions": replay.ActionsValue(s.LegalActions),
		"cards_dealt":   s.CardsDealt,
		"reshuffles":    s.Reshuffles,
		"stats":         statsValue(s.Stats),
	}
	if showCount {
		m["running_count"] = s.RunningCount
		m["true_count"] = s.TrueCount
		m["decks_remaining"] = s.DecksRemaining
	}
	if s.Recommendation != nil {
		m["recommendation"] = replay.RecommendationValue(*s.Recommendation)
	}
	return m
}

func DecisionPayload(d blackjack.Decision) map[string]any {
	return map[string]any{
		"hand_index":     d.HandIndex,
		"hand":           replay.CardsValue(d.Hand),
		"upcard":         d.Upcard.String(),
		"chosen":         d.Chosen.String(),
		"recommendation": replay.RecommendationValue(d.Recommended),
		"correct":        d.Correct,
		"feedback":       d.Feedback,
	}
}

func SettlementPayload(res *blackjack.SettlementResult) map[string]any {
	return replay.SettlementValue(res)
}

func CountCheckPayload(c blackjack.CountCheck) map[string]any {
	return map[string]any{
		"entered":  c.Entered,
		"actual":   c.Actual,
		"correct":  c.Correct,
		"feedback": c.Feedback,
	}
}

func SummaryPayload(sessionID string, sum blackjack.SessionSummary) map[string]any {
	m := map[string]any{
		"session_id":       sessionID,
		"simulation_type":  string(sum.SimulationType),
		"accuracy":         sum.Accuracy,
		"correct_count":    sum.CorrectCount,
		"incorrect_count":  sum.IncorrectCount,
		"hands_played":     sum.HandsPlayed,
		"duration_seconds": float64(sum.DurationSeconds),
	}
	if sum.Score != nil {
		m["score"] = *sum.Score
	}
	return m
}

func ErrorPayload(code int, msg string) map[string]any {
	return map[string]any{"code": code, "message": msg}
}

func statsValue(s blackjack.Stats) map[string]any {
	return map[string]any{
		"correct":      s.Correct,
		"incorrect":    s.Incorrect,
		"hands_played": s.HandsPlayed,
		"wins":         s.Wins,
		"losses":       s.Losses,
		"pushes":       s.Pushes,
		"blackjacks":   s.Blackjacks,
		"net_units":    s.NetUnits,
		"accuracy":     s.Accuracy(),
	}
}
