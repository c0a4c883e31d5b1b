// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/binary"

	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// ValueLength - bytes in one storage value
const ValueLength = 32

// Value - a single fixed-width storage value
type Value [ValueLength]byte

// SlotKind - discriminator for the two slot layouts
type SlotKind byte

// enumeration of slot kinds
const (
	ValueSlot SlotKind = iota
	MapSlot
)

// slot - one addressable storage item
type slot struct {
	kind    SlotKind
	value   Value
	entries map[Value]Value
}

// Storage - ordered list of individually committed slots
type Storage struct {
	slots []slot
}

// ValueFromWords - pack up to four words into a storage value
func ValueFromWords(words ...merkle.Word) Value {
	var v Value
	for i, w := range words {
		if i >= 4 {
			break
		}
		binary.LittleEndian.PutUint64(v[8*i:], uint64(w))
	}
	return v
}

// ValueFromBytes - copy a byte slice into a storage value
// slices longer than the value width are truncated
func ValueFromBytes(buffer []byte) Value {
	var v Value
	copy(v[:], buffer)
	return v
}

// Word - first word of a value, for counters stored in value slots
func (v Value) Word() merkle.Word {
	return merkle.Word(binary.LittleEndian.Uint64(v[:8]))
}

// IsZero - check for the all-zero value
func (v Value) IsZero() bool {
	return v == Value{}
}

// Digest - a value as a digest, for procedure roots held in storage
func (v Value) Digest() merkle.Digest {
	var d merkle.Digest
	copy(d[:], v[:])
	return d
}

// NewStorage - allocate storage with the given slot layout
//
// the layout is fixed at account creation: slot kinds never change
func NewStorage(layout []SlotKind) (*Storage, error) {
	if len(layout) > constants.MaxStorageSlots {
		return nil, fault.StorageSlotOutOfRange
	}
	slots := make([]slot, len(layout))
	for i, kind := range layout {
		slots[i].kind = kind
		if MapSlot == kind {
			slots[i].entries = make(map[Value]Value)
		}
	}
	return &Storage{slots: slots}, nil
}

// SlotCount - number of addressable slots
func (s *Storage) SlotCount() int {
	return len(s.slots)
}

func (s *Storage) slotAt(index uint8, kind SlotKind) (*slot, error) {
	if int(index) >= len(s.slots) {
		return nil, fault.StorageSlotOutOfRange
	}
	sl := &s.slots[index]
	if kind != sl.kind {
		return nil, fault.StorageSlotWrongKind
	}
	return sl, nil
}

// GetItem - read a value slot
func (s *Storage) GetItem(index uint8) (Value, error) {
	sl, err := s.slotAt(index, ValueSlot)
	if nil != err {
		return Value{}, err
	}
	return sl.value, nil
}

// SetItem - write a value slot, returning the previous value
func (s *Storage) SetItem(index uint8, value Value) (Value, error) {
	sl, err := s.slotAt(index, ValueSlot)
	if nil != err {
		return Value{}, err
	}
	old := sl.value
	sl.value = value
	return old, nil
}

// GetMapItem - read one key of a map slot
// an absent key reads as the zero value
func (s *Storage) GetMapItem(index uint8, key Value) (Value, error) {
	sl, err := s.slotAt(index, MapSlot)
	if nil != err {
		return Value{}, err
	}
	return sl.entries[key], nil
}

// SetMapItem - write one key of a map slot, returning the previous value
// writing the zero value removes the key
func (s *Storage) SetMapItem(index uint8, key Value, value Value) (Value, error) {
	sl, err := s.slotAt(index, MapSlot)
	if nil != err {
		return Value{}, err
	}
	old := sl.entries[key]
	if value.IsZero() {
		delete(sl.entries, key)
	} else {
		sl.entries[key] = value
	}
	return old, nil
}

// slotDigest - commitment to a single slot
//
// tagged with the slot index and kind so that equal contents in
// different slots commit differently
func (s *Storage) slotDigest(index int) merkle.Digest {
	sl := &s.slots[index]
	header := []byte{byte(index), byte(sl.kind)}

	switch sl.kind {
	case ValueSlot:
		return merkle.NewDigest(append(header, sl.value[:]...))

	case MapSlot:
		// order-independent fold over the entries
		var acc merkle.Digest
		for key, value := range sl.entries {
			entry := make([]byte, 0, len(header)+2*ValueLength)
			entry = append(entry, header...)
			entry = append(entry, key[:]...)
			entry = append(entry, value[:]...)
			acc = acc.Xor(merkle.NewDigest(entry))
		}
		// bind the fold to this slot even when empty
		return merkle.NewDigest(append(header, acc[:]...))
	}
	return merkle.Digest{}
}

// Commitment - deterministic aggregate over all slots
//
// order-independent: any evaluation order yields the same digest
func (s *Storage) Commitment() merkle.Digest {
	var acc merkle.Digest
	for i := range s.slots {
		acc = acc.Xor(s.slotDigest(i))
	}
	return acc
}

// Clone - deep copy, for the saved views of foreign contexts
func (s *Storage) Clone() *Storage {
	slots := make([]slot, len(s.slots))
	for i := range s.slots {
		slots[i].kind = s.slots[i].kind
		slots[i].value = s.slots[i].value
		if nil != s.slots[i].entries {
			entries := make(map[Value]Value, len(s.slots[i].entries))
			for k, v := range s.slots[i].entries {
				entries[k] = v
			}
			slots[i].entries = entries
		}
	}
	return &Storage{slots: slots}
}
