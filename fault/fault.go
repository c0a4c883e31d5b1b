// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - some item already exists
	ExistsError GenericError
	// InvalidError - some data is invalid
	InvalidError GenericError
	// NotFoundError - some item was not found
	NotFoundError GenericError
	// ProcessError - some process failed
	ProcessError GenericError

	// ProtocolError - kernel ABI misuse by untrusted code
	ProtocolError GenericError
	// AssetError - vault or faucet accounting failure
	AssetError GenericError
	// AuthorizationError - authentication or nonce advancement failure
	AuthorizationError GenericError
	// NoteError - note construction or consumption failure
	NoteError GenericError
	// AggregationError - cross-transaction batch consistency failure
	AggregationError GenericError
)

// common errors - keep in alphabetic order within each class
var (
	// protocol violations
	ForeignContextDepthExceeded = ProtocolError("foreign context depth exceeded")
	ForeignContextNotActive     = ProtocolError("end foreign context without matching start")
	InvalidProcedureOffset      = ProtocolError("procedure offset is not assigned")
	MutationInForeignContext    = ProtocolError("mutation attempted in foreign context")
	TransactionNotExecuting     = ProtocolError("operation outside executing transaction")

	// asset errors
	DuplicateNonFungibleAsset = AssetError("non-fungible asset already in vault")
	FungibleAmountOverflow    = AssetError("fungible amount exceeds maximum")
	InsufficientBalance       = AssetError("remove amount exceeds balance")
	IssuanceCapExceeded       = AssetError("mint exceeds maximum issuance")
	NonFungibleAssetNotFound  = AssetError("non-fungible asset not in vault")
	NonFungibleNotIssued      = AssetError("non-fungible asset was not issued")
	NotFaucetAccount          = AssetError("faucet operation on non-faucet account")
	WrongFaucetAccount        = AssetError("asset faucet id does not match account")
	ZeroAmount                = AssetError("fungible amount is zero")

	// authorization errors
	DoubleNonceIncrement        = AuthorizationError("nonce already incremented")
	MissingAuthentication       = AuthorizationError("transaction was not authenticated")
	MissingSignatureAdvice      = AuthorizationError("no signature supplied for message")
	NonceDeltaZeroAfterMutation = AuthorizationError("zero nonce delta after state mutation")
	NonceOverflow               = AuthorizationError("nonce increment overflows")
	InvalidPublicKey            = AuthorizationError("stored public key is invalid")
	InvalidTransactionSignature = AuthorizationError("transaction signature verification failed")

	// note errors
	NoteAlreadyFinalized = NoteError("asset added to finalized note")
	NoteIndexOutOfRange  = NoteError("created note index out of range")
	TooManyNoteAssets    = NoteError("note asset count exceeds maximum")
	TooManyNoteInputs    = NoteError("note input count exceeds maximum")
	TooManyInputNotes    = NoteError("input note count exceeds maximum")
	TooManyOutputNotes   = NoteError("output note count exceeds maximum")

	// aggregation errors
	BatchNoteMismatch  = AggregationError("consumed note does not match created note")
	DoubleSpendInBatch = AggregationError("nullifier consumed twice in batch")
	EmptyBatch         = AggregationError("batch contains no transactions")
	MissingProof       = AggregationError("transaction has no verified proof")
	NonceGapInBatch    = AggregationError("account nonce gap in batch")
	NonceReuseInBatch  = AggregationError("account nonce reused in batch")

	// general errors
	AssetConservationViolated   = ProcessError("asset conservation violated")
	AccountCommitmentMismatch   = InvalidError("account commitment does not match proposal")
	BlockNumberOutOfSequence    = InvalidError("block number out of sequence")
	BlockTimestampTooFarAhead   = InvalidError("block timestamp too far ahead")
	CannotDecodeIdentifier      = InvalidError("cannot decode account identifier")
	ChecksumMismatch            = InvalidError("checksum mismatch")
	InvalidCount                = InvalidError("invalid count")
	InvalidStructPointer        = InvalidError("invalid struct pointer")
	NoteTagRequiresPublicType   = NoteError("note tag requires a public note type")
	ProofVerificationFailed     = ProcessError("proof verification failed")
	StorageSlotOutOfRange       = InvalidError("storage slot index out of range")
	StorageSlotWrongKind        = InvalidError("storage slot kind mismatch")
	TransactionExpired          = InvalidError("transaction expired before reference block")
	PoolStopped                 = ProcessError("pool has been stopped")
	LinkNotFound                = NotFoundError("link not found")
	NotLink                     = InvalidError("not a link")
	AccountNotFound             = NotFoundError("account not found")
	AlreadyInitialised          = ExistsError("already initialised")
	NotInitialised              = NotFoundError("not initialised")
	InvalidLoggerChannel        = InvalidError("invalid logger channel")
	TransactionAlreadyInPool    = ExistsError("transaction already in pool")
	RejectedTransactionHasState = ProcessError("rejected transaction exposes state")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e ProtocolError) Error() string      { return string(e) }
func (e AssetError) Error() string         { return string(e) }
func (e AuthorizationError) Error() string { return string(e) }
func (e NoteError) Error() string          { return string(e) }
func (e AggregationError) Error() string   { return string(e) }

// IsErrExists - determine if an exists class error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an invalid class error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if a not found class error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if a process class error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrProtocol - determine if a kernel ABI violation
func IsErrProtocol(e error) bool { _, ok := e.(ProtocolError); return ok }

// IsErrAsset - determine if an asset accounting error
func IsErrAsset(e error) bool { _, ok := e.(AssetError); return ok }

// IsErrAuthorization - determine if an authentication error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrNote - determine if a note lifecycle error
func IsErrNote(e error) bool { _, ok := e.(NoteError); return ok }

// IsErrAggregation - determine if a batch consistency error
func IsErrAggregation(e error) bool { _, ok := e.(AggregationError); return ok }
