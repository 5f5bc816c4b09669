package job

// Kind tags which variant of Job is populated.
type Kind int

const (
	LogReferenceKind Kind = iota + 1
	TransactionSignatureKind
	ReceiptReferenceKind
)

// LogReference is an EVM-like log entry, just enough of it to re-fetch and
// decode later: the adapter layer owns ABI decoding, this package only
// carries the addressing information.
type LogReference struct {
	BlockNumber uint64
	TxHash      string
	LogIndex    uint64
	Address     string
	Topics      []string
	Data        []byte
}

// ReceiptReference is a NEAR-like state-change receipt reference.
type ReceiptReference struct {
	Hash        string
	BlockHeight uint64
	Timestamp   uint64
}

// Job is the tagged union of work items a Backend Adapter enqueues and later
// resolves into zero-or-more push payloads (§3). Exactly one of Log/
// Signature/Receipt is meaningful, selected by Kind.
type Job struct {
	Kind      Kind
	Log       LogReference
	Signature string
	Receipt   ReceiptReference
}

func NewLogJob(l LogReference) Job { return Job{Kind: LogReferenceKind, Log: l} }
func NewSignatureJob(sig string) Job {
	return Job{Kind: TransactionSignatureKind, Signature: sig}
}
func NewReceiptJob(r ReceiptReference) Job { return Job{Kind: ReceiptReferenceKind, Receipt: r} }

// Cursor derives the Cursor that should be persisted once this Job has been
// processed, mirroring the Rust side's `IndexingCursor::try_from(job)`.
func (j Job) Cursor() Cursor {
	switch j.Kind {
	case LogReferenceKind:
		return BlockCursor(j.Log.BlockNumber)
	case TransactionSignatureKind:
		return TransactionCursor(j.Signature)
	case ReceiptReferenceKind:
		return BlockCursor(j.Receipt.BlockHeight)
	default:
		return NoneCursor()
	}
}
