package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI describes the subset of the HAPI-like registry contract this
// indexer reads and writes (§4.1). It is hand-maintained rather than
// abigen-generated, the same way evm_strategy.go's anchor contract calls
// go through a raw bind.BoundContract rather than a generated binding.
const contractABI = `[
  {"type":"event","name":"Initialized","anonymous":false,"inputs":[]},
  {"type":"event","name":"AuthorityChanged","anonymous":false,"inputs":[{"name":"authority","type":"address","indexed":true}]},
  {"type":"event","name":"StakeConfigurationChanged","anonymous":false,"inputs":[]},
  {"type":"event","name":"RewardConfigurationChanged","anonymous":false,"inputs":[]},
  {"type":"event","name":"ReporterCreated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"ReporterUpdated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"ReporterActivated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"ReporterDeactivated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"ReporterStakeWithdrawn","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"CaseCreated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"CaseUpdated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"AddressCreated","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true}]},
  {"type":"event","name":"AddressUpdated","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true}]},
  {"type":"event","name":"AddressConfirmed","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true}]},
  {"type":"event","name":"AssetCreated","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true},{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"AssetUpdated","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true},{"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"AssetConfirmed","anonymous":false,"inputs":[{"name":"addr","type":"address","indexed":true},{"name":"id","type":"uint256","indexed":true}]},

  {"type":"function","name":"authority","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
  {"type":"function","name":"setAuthority","stateMutability":"nonpayable","inputs":[{"name":"newAuthority","type":"address"}],"outputs":[]},

  {"type":"function","name":"stakeConfiguration","stateMutability":"view","inputs":[],"outputs":[
    {"name":"token","type":"address"},{"name":"unlockDuration","type":"uint64"},
    {"name":"validatorStake","type":"uint256"},{"name":"tracerStake","type":"uint256"},
    {"name":"publisherStake","type":"uint256"},{"name":"authorityStake","type":"uint256"}
  ]},
  {"type":"function","name":"updateStakeConfiguration","stateMutability":"nonpayable","inputs":[
    {"name":"token","type":"address"},{"name":"unlockDuration","type":"uint64"},
    {"name":"validatorStake","type":"uint256"},{"name":"tracerStake","type":"uint256"},
    {"name":"publisherStake","type":"uint256"},{"name":"authorityStake","type":"uint256"}
  ],"outputs":[]},

  {"type":"function","name":"rewardConfiguration","stateMutability":"view","inputs":[],"outputs":[
    {"name":"token","type":"address"},
    {"name":"addressConfirmationReward","type":"uint256"},{"name":"addressTracerReward","type":"uint256"},
    {"name":"assetConfirmationReward","type":"uint256"},{"name":"assetTracerReward","type":"uint256"}
  ]},
  {"type":"function","name":"updateRewardConfiguration","stateMutability":"nonpayable","inputs":[
    {"name":"token","type":"address"},
    {"name":"addressConfirmationReward","type":"uint256"},{"name":"addressTracerReward","type":"uint256"},
    {"name":"assetConfirmationReward","type":"uint256"},{"name":"assetTracerReward","type":"uint256"}
  ],"outputs":[]},

  {"type":"function","name":"createReporter","stateMutability":"nonpayable","inputs":[
    {"name":"id","type":"uint256"},{"name":"account","type":"address"},{"name":"role","type":"uint8"},
    {"name":"name","type":"string"},{"name":"url","type":"string"}
  ],"outputs":[]},
  {"type":"function","name":"updateReporter","stateMutability":"nonpayable","inputs":[
    {"name":"id","type":"uint256"},{"name":"account","type":"address"},{"name":"role","type":"uint8"},
    {"name":"name","type":"string"},{"name":"url","type":"string"}
  ],"outputs":[]},
  {"type":"function","name":"activateReporter","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"deactivateReporter","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"unstake","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getReporter","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[
    {"name":"id","type":"uint256"},{"name":"account","type":"address"},{"name":"role","type":"uint8"},
    {"name":"status","type":"uint8"},{"name":"name","type":"string"},{"name":"url","type":"string"},
    {"name":"stake","type":"uint256"},{"name":"unlockTimestamp","type":"uint64"}
  ]},
  {"type":"function","name":"getReporterByAccount","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[
    {"name":"id","type":"uint256"},{"name":"account","type":"address"},{"name":"role","type":"uint8"},
    {"name":"status","type":"uint8"},{"name":"name","type":"string"},{"name":"url","type":"string"},
    {"name":"stake","type":"uint256"},{"name":"unlockTimestamp","type":"uint64"}
  ]},
  {"type":"function","name":"reporterCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},

  {"type":"function","name":"createCase","stateMutability":"nonpayable","inputs":[
    {"name":"id","type":"uint256"},{"name":"name","type":"string"},{"name":"url","type":"string"}
  ],"outputs":[]},
  {"type":"function","name":"updateCase","stateMutability":"nonpayable","inputs":[
    {"name":"id","type":"uint256"},{"name":"name","type":"string"},{"name":"url","type":"string"},{"name":"status","type":"uint8"}
  ],"outputs":[]},
  {"type":"function","name":"getCase","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[
    {"name":"id","type":"uint256"},{"name":"name","type":"string"},{"name":"url","type":"string"},
    {"name":"status","type":"uint8"},{"name":"reporterId","type":"uint256"}
  ]},
  {"type":"function","name":"caseCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},

  {"type":"function","name":"createAddress","stateMutability":"nonpayable","inputs":[
    {"name":"addr","type":"address"},{"name":"caseId","type":"uint256"},{"name":"risk","type":"uint8"},{"name":"category","type":"uint8"}
  ],"outputs":[]},
  {"type":"function","name":"updateAddress","stateMutability":"nonpayable","inputs":[
    {"name":"addr","type":"address"},{"name":"risk","type":"uint8"},{"name":"category","type":"uint8"}
  ],"outputs":[]},
  {"type":"function","name":"confirmAddress","stateMutability":"nonpayable","inputs":[{"name":"addr","type":"address"}],"outputs":[]},
  {"type":"function","name":"getAddress","stateMutability":"view","inputs":[{"name":"addr","type":"address"}],"outputs":[
    {"name":"addr","type":"address"},{"name":"caseId","type":"uint256"},{"name":"reporterId","type":"uint256"},
    {"name":"risk","type":"uint8"},{"name":"category","type":"uint8"},{"name":"confirmations","type":"uint64"}
  ]},
  {"type":"function","name":"addressCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},

  {"type":"function","name":"createAsset","stateMutability":"nonpayable","inputs":[
    {"name":"addr","type":"address"},{"name":"assetId","type":"uint256"},{"name":"caseId","type":"uint256"},
    {"name":"risk","type":"uint8"},{"name":"category","type":"uint8"}
  ],"outputs":[]},
  {"type":"function","name":"updateAsset","stateMutability":"nonpayable","inputs":[
    {"name":"addr","type":"address"},{"name":"assetId","type":"uint256"},{"name":"risk","type":"uint8"},{"name":"category","type":"uint8"}
  ],"outputs":[]},
  {"type":"function","name":"confirmAsset","stateMutability":"nonpayable","inputs":[
    {"name":"addr","type":"address"},{"name":"assetId","type":"uint256"}
  ],"outputs":[]},
  {"type":"function","name":"getAsset","stateMutability":"view","inputs":[
    {"name":"addr","type":"address"},{"name":"assetId","type":"uint256"}
  ],"outputs":[
    {"name":"addr","type":"address"},{"name":"assetId","type":"uint256"},{"name":"caseId","type":"uint256"},
    {"name":"reporterId","type":"uint256"},{"name":"risk","type":"uint8"},{"name":"category","type":"uint8"},
    {"name":"confirmations","type":"uint64"}
  ]},
  {"type":"function","name":"assetCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]}
]`

func parsedABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(contractABI))
}
