// Package integration exercises the whole protocol end to end: userset
// creation, shard dealing and verification, envelope sealing, session-managed
// part collection, and quorum decryption.
package integration

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Caqil/threshold-encrypt/internal/session"
	"github.com/Caqil/threshold-encrypt/pkg/codec"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
	"github.com/Caqil/threshold-encrypt/pkg/envelope"
	"github.com/Caqil/threshold-encrypt/pkg/shardstore"
	"github.com/Caqil/threshold-encrypt/pkg/userset"
)

func TestFullProtocol(t *testing.T) {
	for _, typ := range []curve.Type{curve.P256, curve.Secp256k1, curve.Ed25519} {
		c, err := curve.New(typ)
		if err != nil {
			t.Fatalf("curve.New failed: %v", err)
		}
		t.Run(c.Name(), func(t *testing.T) {
			runFullProtocol(t, c)
		})
	}
}

func runFullProtocol(t *testing.T, c curve.Curve) {
	// 1. Create a userset: 2 owners, 3 members, quorum 1 owner + 2 members
	info, err := userset.NewInfo("ops",
		[]string{"alice", "bob"}, 1,
		[]string{"carol", "dave", "erin"}, 2)
	if err != nil {
		t.Fatalf("NewInfo failed: %v", err)
	}

	key, err := userset.GenerateGroupKey(c, info)
	if err != nil {
		t.Fatalf("GenerateGroupKey failed: %v", err)
	}

	// 2. Every holder verifies its shard against the commitments
	for _, hs := range key.Shards {
		if !userset.VerifyShard(c, hs.Shard, key.Commitments) {
			t.Fatalf("shard %d failed verification", hs.Shard.ID)
		}
	}

	// 3. Shards travel as transport text and come back intact
	for _, hs := range key.Shards {
		text, err := codec.FormatShard(hs.Shard)
		if err != nil {
			t.Fatalf("FormatShard failed: %v", err)
		}
		back, err := codec.ParseShard(text, c.Order())
		if err != nil {
			t.Fatalf("ParseShard failed: %v", err)
		}
		if back.ID != hs.Shard.ID || !back.Value.Equal(hs.Shard.Value) {
			t.Fatal("shard text round trip changed the shard")
		}
	}

	// 4. Seal a message under the group public key and serialize it
	plaintext := []byte("rotate the deployment credentials on friday")
	ct, err := envelope.Seal(c, plaintext, key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	wire, err := codec.EncodeCiphertextText(ct, c)
	if err != nil {
		t.Fatalf("EncodeCiphertextText failed: %v", err)
	}
	ct, err = codec.DecodeCiphertextText(wire, c)
	if err != nil {
		t.Fatalf("DecodeCiphertextText failed: %v", err)
	}

	// 5. Collect parts through the session manager, enforcing composition
	mgr := session.NewManager(time.Minute)
	policy := session.Policy{
		OwnerShardIDs: map[uint32]bool{},
		TotalShards:   info.Holders(),
		OwnerQuorum:   info.OwnerThreshold,
		MemberQuorum:  info.MemberThreshold,
	}
	for _, hs := range key.Shards {
		if hs.Owner {
			policy.OwnerShardIDs[hs.Shard.ID] = true
		}
	}

	sess, err := mgr.Create(info.ID, policy)
	if err != nil {
		t.Fatalf("session Create failed: %v", err)
	}

	// alice (owner), carol and dave (members) respond, each part crossing
	// the wire in transport form
	for _, holder := range []string{"alice", "carol", "dave"} {
		hs := findHolder(t, key, holder)
		part, err := elgamal.PartialDecrypt(c, hs.Shard, ct.C1)
		if err != nil {
			t.Fatalf("%s: PartialDecrypt failed: %v", holder, err)
		}

		text, err := codec.EncodePartText(part)
		if err != nil {
			t.Fatalf("EncodePartText failed: %v", err)
		}
		part, err = codec.DecodePartText(text, c)
		if err != nil {
			t.Fatalf("DecodePartText failed: %v", err)
		}

		if _, err := mgr.AddPart(sess.ID, part); err != nil {
			t.Fatalf("%s: AddPart failed: %v", holder, err)
		}
	}

	parts, err := mgr.Parts(sess.ID)
	if err != nil {
		t.Fatalf("Parts failed: %v", err)
	}

	// 6. Combine and open
	got, err := envelope.Open(c, parts, ct, info.Threshold())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("recovered %q, expected %q", got, plaintext)
	}
}

// TestQuorumCompositionEnforced checks that three members without an owner
// are rejected even though they meet the total count.
func TestQuorumCompositionEnforced(t *testing.T) {
	c, _ := curve.New(curve.P256)

	info, err := userset.NewInfo("ops",
		[]string{"alice", "bob"}, 1,
		[]string{"carol", "dave", "erin"}, 2)
	if err != nil {
		t.Fatalf("NewInfo failed: %v", err)
	}
	key, err := userset.GenerateGroupKey(c, info)
	if err != nil {
		t.Fatalf("GenerateGroupKey failed: %v", err)
	}

	ct, err := envelope.Seal(c, []byte("owners must consent"), key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	mgr := session.NewManager(time.Minute)
	policy := session.Policy{
		OwnerShardIDs: map[uint32]bool{1: true, 2: true},
		TotalShards:   5,
		OwnerQuorum:   1,
		MemberQuorum:  2,
	}
	sess, _ := mgr.Create(info.ID, policy)

	for _, holder := range []string{"carol", "dave", "erin"} {
		hs := findHolder(t, key, holder)
		part, err := elgamal.PartialDecrypt(c, hs.Shard, ct.C1)
		if err != nil {
			t.Fatalf("PartialDecrypt failed: %v", err)
		}
		if _, err := mgr.AddPart(sess.ID, part); err != nil {
			t.Fatalf("AddPart failed: %v", err)
		}
	}

	if _, err := mgr.Parts(sess.ID); !errors.Is(err, session.ErrQuorumNotReached) {
		t.Errorf("members-only quorum released parts: %v", err)
	}
}

// TestShardPersistenceRoundTrip walks a holder's shard through the encrypted
// file store and uses the reloaded shard for a real decryption.
func TestShardPersistenceRoundTrip(t *testing.T) {
	c, _ := curve.New(curve.P256)

	info, err := userset.NewInfo("archive", []string{"alice"}, 1, []string{"bob"}, 1)
	if err != nil {
		t.Fatalf("NewInfo failed: %v", err)
	}
	key, err := userset.GenerateGroupKey(c, info)
	if err != nil {
		t.Fatalf("GenerateGroupKey failed: %v", err)
	}

	// alice persists her shard, then reloads it
	const password = "a long enough password"
	store := shardstore.NewFileStore(filepath.Join(t.TempDir(), "alice.shard"))
	err = store.Save(&shardstore.Record{
		SetID:     info.ID,
		Holder:    "alice",
		CurveName: key.CurveName,
		Threshold: info.Threshold(),
		Holders:   info.Holders(),
		Shard:     key.Shards[0].Shard,
	}, password)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec, err := store.Load(password)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ct, err := envelope.Seal(c, []byte("cold storage"), key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	p1, err := elgamal.PartialDecrypt(c, rec.Shard, ct.C1)
	if err != nil {
		t.Fatalf("PartialDecrypt with reloaded shard failed: %v", err)
	}
	p2, err := elgamal.PartialDecrypt(c, key.Shards[1].Shard, ct.C1)
	if err != nil {
		t.Fatalf("PartialDecrypt failed: %v", err)
	}

	got, err := envelope.Open(c, []*elgamal.DecryptionPart{p1, p2}, ct, info.Threshold())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got, []byte("cold storage")) {
		t.Fatal("reloaded shard produced wrong plaintext")
	}
}

func findHolder(t *testing.T, key *userset.GroupKey, name string) *userset.HolderShard {
	t.Helper()
	for _, hs := range key.Shards {
		if hs.Holder == name {
			return hs
		}
	}
	t.Fatalf("holder %s not found", name)
	return nil
}
