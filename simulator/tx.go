package simulator

import "github.com/luxfi/sui-arb/model"

// Address is a 32-byte account address.
type Address [32]byte

// Argument identifies a transaction-local value: either a transaction
// input, the gas coin, or the output of a previous command. Adapters
// thread Arguments between commands without knowing each other's
// implementation (spec.md §4.C).
type Argument struct {
	Kind  ArgumentKind
	Index uint16
}

type ArgumentKind uint8

const (
	ArgInput ArgumentKind = iota
	ArgGasCoin
	ArgResult
	ArgNestedResult
)

// CommandKind enumerates the programmable-transaction-block command
// kinds a Dex adapter may emit (spec.md §6).
type CommandKind uint8

const (
	CommandMoveCall CommandKind = iota
	CommandSplitCoin
	CommandMergeCoin
	CommandTransferObjects
)

// MoveCall names a package::module::function call with its type
// parameters and arguments — the concrete shape every adapter's
// extend_*_tx method builds (spec.md §6).
type MoveCall struct {
	Package       model.ObjectID
	Module        string
	Function      string
	TypeArguments []string
	Arguments     []Argument
}

// Command is one step of a programmable transaction block.
type Command struct {
	Kind        CommandKind
	MoveCall    *MoveCall
	SplitAmount uint64   // CommandSplitCoin
	SplitCoin   Argument // CommandSplitCoin
	MergeInto   Argument // CommandMergeCoin
	MergeFrom   []Argument
	Recipient   Address    // CommandTransferObjects
	Objects     []Argument // CommandTransferObjects
}

// Transaction is a programmable transaction block: a sender, a list of
// input objects, gas payment, and an ordered command sequence.
type Transaction struct {
	Sender    Address
	Inputs    []model.ObjectRef
	GasCoins  []model.ObjectRef
	GasPrice  uint64
	GasBudget uint64
	Commands  []Command
}

// Event is a Move event emitted during execution, opaque to the
// simulator and decoded by the protocol adapter that recognizes its
// type.
type Event struct {
	Type   string
	Sender Address
	Bytes  []byte
}

// TransactionEffects is the subset of on-chain execution effects the
// core cares about: success/failure and the objects touched.
type TransactionEffects struct {
	Success        bool
	Error          string
	CreatedObjects []model.ObjectID
	MutatedObjects []model.ObjectID
	DeletedObjects []model.ObjectID
}

// StructLayout describes a Move struct's field layout, enough for an
// adapter to decode a pool object's on-chain fields.
type StructLayout struct {
	Type   string
	Fields []FieldLayout
}

// FieldLayout is one field of a StructLayout.
type FieldLayout struct {
	Name string
	Type string
}
