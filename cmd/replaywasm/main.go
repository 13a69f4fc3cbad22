//go:build js && wasm

// Command replaywasm exposes round replays and strategy advice to the browser trainer.
package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"
	"blackjack-lite/replay"
)

type replayRequest struct {
	Spec replay.RoundSpec `json:"spec"`
}

type replayResponse struct {
	OK    bool                `json:"ok"`
	Tape  *replay.WireTape    `json:"tape,omitempty"`
	Error *replay.ReplayError `json:"error,omitempty"`
}

type adviceRequest struct {
	Hand      []string `json:"hand"`
	Upcard    string   `json:"upcard"`
	TrueCount float64  `json:"trueCount"`
	CanDouble bool     `json:"canDouble"`
	CanSplit  bool     `json:"canSplit"`
}

type adviceResponse struct {
	OK          bool   `json:"ok"`
	Basic       string `json:"basic,omitempty"`
	Recommended string `json:"recommended,omitempty"`
	Deviation   string `json:"deviation,omitempty"`
	Error       string `json:"error,omitempty"`
}

func main() {
	js.Global().Set("__blackjackReplay", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(replayResponse{
				Error: &replay.ReplayError{StepIndex: -1, Reason: "invalid_request", Message: "missing request payload"},
			})
		}
		return mustJSON(handleReplay(args[0].String()))
	}))
	js.Global().Set("__blackjackAdvice", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(adviceResponse{Error: "missing request payload"})
		}
		return mustJSON(handleAdvice(args[0].String()))
	}))

	select {}
}

func handleReplay(raw string) replayResponse {
	var req replayRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return replayResponse{
			Error: &replay.ReplayError{StepIndex: -1, Reason: "invalid_json", Message: err.Error()},
		}
	}

	tape, err := replay.GenerateTape(req.Spec)
	if err != nil {
		var replayErr *replay.ReplayError
		if errors.As(err, &replayErr) {
			return replayResponse{Error: replayErr}
		}
		return replayResponse{
			Error: &replay.ReplayError{StepIndex: -1, Reason: "replay_generation_failed", Message: err.Error()},
		}
	}
	return replayResponse{OK: true, Tape: replay.ToWireTape(tape)}
}

func handleAdvice(raw string) adviceResponse {
	var req adviceRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return adviceResponse{Error: err.Error()}
	}
	hand, err := card.ParseList(req.Hand)
	if err != nil || len(hand) < 2 {
		return adviceResponse{Error: "hand must hold at least two cards"}
	}
	up, err := card.Parse(req.Upcard)
	if err != nil {
		return adviceResponse{Error: err.Error()}
	}

	basic := blackjack.Recommend(hand, up, req.CanDouble, req.CanSplit)
	resp := adviceResponse{OK: true, Basic: basic.String(), Recommended: basic.String()}
	if dev, ok := blackjack.MatchDeviation(hand, up, req.TrueCount, basic, req.CanDouble, req.CanSplit); ok {
		resp.Recommended = dev.Action.String()
		resp.Deviation = dev.Name
	}
	return resp
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b2, _ := json.Marshal(replayResponse{
			Error: &replay.ReplayError{StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		})
		return string(b2)
	}
	return string(b)
}
