package record

import "testing"

func TestEncodeCRCVectors(t *testing.T) {
	cases := []struct {
		name string
		rec  *Record
		crc  uint32
	}{
		{"normal", &Record{Key: []byte("name"), Value: []byte("bitcask-rs"), Kind: KindNormal}, 1020360578},
		{"normal-empty-value", &Record{Key: []byte("name"), Value: nil, Kind: KindNormal}, 3756865478},
		{"deleted", &Record{Key: []byte("name"), Value: []byte("bitcask-rs"), Kind: KindDeleted}, 1867197446},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.rec)
			if got := CRC(encoded); got != tc.crc {
				t.Fatalf("crc = %d, want %d", got, tc.crc)
			}
			if !VerifyCRC(encoded) {
				t.Fatalf("VerifyCRC failed for %s", tc.name)
			}
			if len(encoded) != EncodedLength(tc.rec) {
				t.Fatalf("EncodedLength mismatch: got %d want %d", EncodedLength(tc.rec), len(encoded))
			}
		})
	}
}

func TestEncodeRejectsTamperedCRC(t *testing.T) {
	encoded := Encode(&Record{Key: []byte("k"), Value: []byte("v"), Kind: KindNormal})
	encoded[0] ^= 0xFF
	if VerifyCRC(encoded) {
		t.Fatal("VerifyCRC should fail after corrupting the record")
	}
}

func TestPositionRoundTrip(t *testing.T) {
	pos := Position{FileID: 7, Offset: 123456, Size: 42}
	got := DecodePosition(EncodePosition(pos))
	if got != pos {
		t.Fatalf("position roundtrip mismatch: got %+v want %+v", got, pos)
	}
}

func TestSequencedKeyRoundTrip(t *testing.T) {
	key := []byte("hello")
	encoded := SequencedKey(key, 9)
	seq, got := ParseSequencedKey(encoded)
	if seq != 9 || string(got) != "hello" {
		t.Fatalf("sequenced key roundtrip mismatch: seq=%d key=%q", seq, got)
	}
}

func TestSequencedKeyNonTransactional(t *testing.T) {
	encoded := SequencedKey([]byte("k"), NonTransactionSeq)
	seq, key := ParseSequencedKey(encoded)
	if seq != 0 || string(key) != "k" {
		t.Fatalf("expected seq 0, key %q; got seq %d, key %q", "k", seq, key)
	}
}
