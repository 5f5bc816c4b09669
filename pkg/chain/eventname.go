package chain

// EventName is the backend-neutral event tag every mutation on the registry
// maps to. Each has a canonical snake_case spelling emitted on the wire and
// one or more backend-native aliases the parser accepts, grounded on
// original_source/client.rs/src/client/events.rs's FromStr/Display arms.
type EventName int

const (
	Initialize EventName = iota
	SetAuthority
	UpdateStakeConfiguration
	UpdateRewardConfiguration
	CreateReporter
	UpdateReporter
	ActivateReporter
	DeactivateReporter
	Unstake
	CreateCase
	UpdateCase
	CreateAddress
	UpdateAddress
	ConfirmAddress
	CreateAsset
	UpdateAsset
	ConfirmAsset
)

var eventCanonical = [...]string{
	"initialize", "set_authority", "update_stake_configuration",
	"update_reward_configuration", "create_reporter", "update_reporter",
	"activate_reporter", "deactivate_reporter", "unstake", "create_case",
	"update_case", "create_address", "update_address", "confirm_address",
	"create_asset", "update_asset", "confirm_asset",
}

// eventAliases lists every backend-native spelling (EVM event names, NEAR
// method names) in addition to the canonical one, keyed by EventName index.
var eventAliases = [...][]string{
	{"Initialized"},
	{"AuthorityChanged"},
	{"StakeConfigurationChanged"},
	{"RewardConfigurationChanged"},
	{"ReporterCreated"},
	{"ReporterUpdated"},
	{"ReporterActivated"},
	{"ReporterDeactivated"},
	{"Unstake", "ReporterStakeWithdrawn"},
	{"CaseCreated"},
	{"CaseUpdated"},
	{"AddressCreated"},
	{"AddressUpdated"},
	{"AddressConfirmed"},
	{"AssetCreated"},
	{"AssetUpdated"},
	{"AssetConfirmed"},
}

func (e EventName) String() string {
	if int(e) < 0 || int(e) >= len(eventCanonical) {
		return eventCanonical[Initialize]
	}
	return eventCanonical[e]
}

// ParseEventName accepts both the canonical snake_case spelling and every
// backend-native alias (EVM PascalCase, NEAR method-call spelling, and the
// doubly-aliased "Unstake"/"ReporterStakeWithdrawn" pair).
func ParseEventName(s string) (EventName, error) {
	for i, v := range eventCanonical {
		if v == s {
			return EventName(i), nil
		}
	}
	for i, aliases := range eventAliases {
		for _, a := range aliases {
			if a == s {
				return EventName(i), nil
			}
		}
	}
	return 0, InvalidInputError("invalid event name: "+s, nil)
}

func EventNameFromIndex(index int) (EventName, error) {
	if index < 0 || index >= len(eventCanonical) {
		return 0, ContractDataError("invalid instruction index", nil)
	}
	return EventName(index), nil
}

func (e EventName) MarshalJSON() ([]byte, error) { return []byte(`"` + e.String() + `"`), nil }

func (e *EventName) UnmarshalJSON(data []byte) error {
	v, err := ParseEventName(trimQuotes(string(data)))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
