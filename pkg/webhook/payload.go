// Package webhook ships push payloads and heartbeats from the indexer to
// the downstream Explorer over authenticated HTTP (§4.5, §6).
package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

// NetworkData is the wire form of chain.NetworkDescriptor.
type NetworkData struct {
	Network string `json:"network"`
	ChainID string `json:"chain_id,omitempty"`
}

// PushEvent is the wire form of a decoded on-chain event (§6).
type PushEvent struct {
	Name      chain.EventName `json:"name"`
	TxHash    string          `json:"tx_hash"`
	TxIndex   uint64          `json:"tx_index"`
	Timestamp uint64          `json:"timestamp"`
}

// PushData is exactly one of Reporter | Case | Address | Asset (§3),
// rendered on the wire as a single-key object keyed by entity type tag,
// grounded on explorer/src/server/handlers/events.rs's PushData dispatch.
type PushData struct {
	Reporter *chain.Reporter
	Case     *chain.Case
	Address  *chain.Address
	Asset    *chain.Asset
}

func ReporterData(r chain.Reporter) PushData { return PushData{Reporter: &r} }
func CaseData(c chain.Case) PushData         { return PushData{Case: &c} }
func AddressData(a chain.Address) PushData   { return PushData{Address: &a} }
func AssetData(a chain.Asset) PushData       { return PushData{Asset: &a} }

func (d PushData) MarshalJSON() ([]byte, error) {
	switch {
	case d.Reporter != nil:
		return json.Marshal(map[string]*chain.Reporter{"Reporter": d.Reporter})
	case d.Case != nil:
		return json.Marshal(map[string]*chain.Case{"Case": d.Case})
	case d.Address != nil:
		return json.Marshal(map[string]*chain.Address{"Address": d.Address})
	case d.Asset != nil:
		return json.Marshal(map[string]*chain.Asset{"Asset": d.Asset})
	default:
		return []byte("null"), nil
	}
}

func (d *PushData) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if raw, ok := tagged["Reporter"]; ok {
		var r chain.Reporter
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		d.Reporter = &r
		return nil
	}
	if raw, ok := tagged["Case"]; ok {
		var c chain.Case
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		d.Case = &c
		return nil
	}
	if raw, ok := tagged["Address"]; ok {
		var a chain.Address
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		d.Address = &a
		return nil
	}
	if raw, ok := tagged["Asset"]; ok {
		var a chain.Asset
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		d.Asset = &a
		return nil
	}
	return fmt.Errorf("unrecognized push data tag")
}

// PushPayload is the envelope POSTed to the webhook URL (§6).
type PushPayload struct {
	ID          uuid.UUID   `json:"id"`
	NetworkData NetworkData `json:"network_data"`
	Event       PushEvent   `json:"event"`
	Data        PushData    `json:"data"`
}

// HeartbeatPayload uses the same envelope shape with event.name="heartbeat"
// and a cursor field in place of data (§6).
type HeartbeatPayload struct {
	ID          uuid.UUID   `json:"id"`
	NetworkData NetworkData `json:"network_data"`
	Event       struct {
		Name      string `json:"name"`
		Timestamp uint64 `json:"timestamp"`
	} `json:"event"`
	Cursor json.RawMessage `json:"cursor"`
}
