// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/offchainlabs/nitro-preimage/cmd/util"
	"github.com/offchainlabs/nitro-preimage/fpvm"
	"github.com/offchainlabs/nitro-preimage/fpvm/fpvmtest"
	"github.com/offchainlabs/nitro-preimage/hint"
	"github.com/offchainlabs/nitro-preimage/kernel"
	"github.com/offchainlabs/nitro-preimage/preimage"
	"github.com/offchainlabs/nitro-preimage/util/testhelpers"
)

var (
	stderrFd        = uintptr(fpvm.StdErr)
	hintReadFd      = uintptr(fpvm.HintRead)
	hintWriteFd     = uintptr(fpvm.HintWrite)
	preimageReadFd  = uintptr(fpvm.PreimageRead)
	preimageWriteFd = uintptr(fpvm.PreimageWrite)
)

func frame(payload []byte) []byte {
	out := binary.BigEndian.AppendUint64(nil, uint64(len(payload)))
	return append(out, payload...)
}

// hostState is a consistent set of preimages for one starting block.
type hostState struct {
	l1Head         common.Hash
	outputRoot     common.Hash
	outputPreimage []byte
	header         *types.Header
	headerRLP      []byte
	stateNode      []byte
}

func newHostState(t *testing.T) *hostState {
	t.Helper()
	stateNode, err := rlp.EncodeToBytes([][]byte{testhelpers.RandomSlice(32), testhelpers.RandomSlice(32)})
	Require(t, err)
	header := &types.Header{
		ParentHash: testhelpers.RandomHash(),
		Root:       crypto.Keccak256Hash(stateNode),
		Number:     big.NewInt(42),
		Difficulty: big.NewInt(1),
		GasLimit:   30_000_000,
		Time:       1700000000,
	}
	headerRLP, err := rlp.EncodeToBytes(header)
	Require(t, err)

	messagePasserRoot := testhelpers.RandomHash()
	outputPreimage := make([]byte, 0, outputRootPreimageSize)
	outputPreimage = append(outputPreimage, common.Hash{}.Bytes()...)
	outputPreimage = append(outputPreimage, header.Root.Bytes()...)
	outputPreimage = append(outputPreimage, messagePasserRoot.Bytes()...)
	outputPreimage = append(outputPreimage, crypto.Keccak256(headerRLP)...)

	return &hostState{
		l1Head:         testhelpers.RandomHash(),
		outputRoot:     crypto.Keccak256Hash(outputPreimage),
		outputPreimage: outputPreimage,
		header:         header,
		headerRLP:      headerRLP,
		stateNode:      stateNode,
	}
}

func (s *hostState) serve(k *fpvmtest.Kernel) {
	k.QueueRead(hintReadFd, fpvmtest.Chunk(1), fpvmtest.Chunk(1), fpvmtest.Chunk(1))
	k.QueueRead(preimageReadFd,
		fpvmtest.Bytes(frame(s.l1Head[:])),
		fpvmtest.Bytes(frame(s.outputRoot[:])),
		fpvmtest.Bytes(frame(s.outputPreimage)),
		fpvmtest.Bytes(frame(s.headerRLP)),
		fpvmtest.Bytes(frame(s.stateNode)),
	)
}

func TestLoadStartingState(t *testing.T) {
	host := newHostState(t)
	k := fpvmtest.NewKernel()
	host.serve(k)

	before := util.Counters("preimage/")
	oracle := preimage.NewClientFromDescriptors(&fpvm.DefaultDescriptorTable, k, &preimage.DefaultClientConfig)
	state, err := LoadStartingState(oracle, &BootConfigDefault)
	Require(t, err)
	after := util.Counters("preimage/")
	if got := after["preimage/hints/written"] - before["preimage/hints/written"]; got != 3 {
		Fail(t, "expected 3 hints counted, got", got)
	}
	if got := after["preimage/oracle/requests"] - before["preimage/oracle/requests"]; got != 5 {
		Fail(t, "expected 5 preimage requests counted, got", got)
	}

	if state.Boot.L1Head != host.l1Head || state.Boot.AgreedOutputRoot != host.outputRoot {
		Fail(t, "unexpected boot info", state.Boot)
	}
	if state.Header.Hash() != host.header.Hash() || state.Header.Number.Uint64() != 42 {
		Fail(t, "unexpected header", state.Header)
	}
	if string(state.StateRootNode) != string(host.stateNode) {
		Fail(t, "unexpected state root node", state.StateRootNode)
	}

	wantRequests := []preimage.Key{
		preimage.LocalIndexKey(1),
		preimage.LocalIndexKey(2),
		preimage.Keccak256Key(host.outputRoot),
		preimage.Keccak256Key(state.Output.BlockHash),
		preimage.Keccak256Key(host.header.Root),
	}
	var requests []byte
	for _, key := range wantRequests {
		b := key.Bytes()
		requests = append(requests, b[:]...)
	}
	if string(k.Written(preimageWriteFd)) != string(requests) {
		Fail(t, "unexpected preimage requests", k.Written(preimageWriteFd))
	}

	wantHints := hint.StartingL2Output.EncodeWith(host.outputRoot[:]) +
		hint.L2BlockHeader.EncodeWith(state.Output.BlockHash[:]) +
		hint.L2StateNode.EncodeWith(host.header.Root[:])
	var gotHints strings.Builder
	written := k.Written(hintWriteFd)
	for len(written) > 0 {
		n := binary.BigEndian.Uint64(written[:8])
		gotHints.Write(written[8 : 8+n])
		written = written[8+n:]
	}
	if gotHints.String() != wantHints {
		Fail(t, "unexpected hints", gotHints.String())
	}
	if k.Pending(preimageReadFd) || k.Pending(hintReadFd) {
		Fail(t, "host data left unread")
	}
}

func TestOutputRootMismatch(t *testing.T) {
	host := newHostState(t)
	host.outputPreimage[0] = 1
	k := fpvmtest.NewKernel()
	host.serve(k)

	oracle := preimage.NewClientFromDescriptors(&fpvm.DefaultDescriptorTable, k, &preimage.DefaultClientConfig)
	_, err := LoadStartingState(oracle, &BootConfigDefault)
	if !errors.Is(err, errInvalidPreimage) {
		Fail(t, "expected invalid preimage, got", err)
	}
}

func TestMainImplSuccess(t *testing.T) {
	host := newHostState(t)
	k := fpvmtest.NewKernel()
	host.serve(k)

	code := mainImpl(k, []string{"--metrics", "--preimage.cache-size", "16"})
	if code != exitSuccess {
		Fail(t, "unexpected exit code", code, string(k.Written(stderrFd)))
	}
	logs := string(k.Written(stderrFd))
	if !strings.Contains(logs, "Starting L2 block") {
		Fail(t, "expected log output on stderr, got", logs)
	}
}

func TestRunExitsThroughKernel(t *testing.T) {
	host := newHostState(t)
	k := fpvmtest.NewKernel()
	host.serve(k)
	if code := runAndRecoverExit(t, k, nil); code != exitSuccess {
		Fail(t, "unexpected exit code", code)
	}

	k = fpvmtest.NewKernel()
	if code := runAndRecoverExit(t, k, nil); code != exitChannel {
		Fail(t, "unexpected exit code for closed host", code)
	}
}

func runAndRecoverExit(t *testing.T, k *fpvmtest.Kernel, args []string) (code int) {
	t.Helper()
	defer func() {
		exit, ok := recover().(fpvmtest.ExitPanic)
		if !ok {
			Fail(t, "run returned without exiting through the kernel")
		}
		code = exit.Code
	}()
	run(k, args)
	return -1
}

func TestMainImplExitCodes(t *testing.T) {
	t.Run("host closed", func(t *testing.T) {
		k := fpvmtest.NewKernel()
		if code := mainImpl(k, nil); code != exitChannel {
			Fail(t, "unexpected exit code", code)
		}
	})
	t.Run("wrong local length", func(t *testing.T) {
		k := fpvmtest.NewKernel()
		k.QueueRead(preimageReadFd, fpvmtest.Bytes(frame([]byte{1, 2, 3})))
		if code := mainImpl(k, nil); code != exitProtocol {
			Fail(t, "unexpected exit code", code)
		}
	})
	t.Run("bad flag", func(t *testing.T) {
		k := fpvmtest.NewKernel()
		if code := mainImpl(k, []string{"--no-such-flag"}); code != exitConfig {
			Fail(t, "unexpected exit code", code)
		}
	})
	t.Run("bad log level", func(t *testing.T) {
		k := fpvmtest.NewKernel()
		if code := mainImpl(k, []string{"--log-level", "loud"}); code != exitConfig {
			Fail(t, "unexpected exit code", code)
		}
	})
	t.Run("help", func(t *testing.T) {
		k := fpvmtest.NewKernel()
		if code := mainImpl(k, []string{"--help"}); code != exitSuccess {
			Fail(t, "unexpected exit code", code)
		}
	})
}

func TestExitCode(t *testing.T) {
	_, parseErr := hint.ParseHint("no-separator")
	cases := []struct {
		err  error
		want int
	}{
		{parseErr, exitInvalidHint},
		{&preimage.LengthMismatchError{Expected: 32, Declared: 3}, exitProtocol},
		{fmt.Errorf("wrapped: %w", errInvalidPreimage), exitProtocol},
		{&hint.OracleProviderError{Stage: hint.StageResponse, Err: fpvm.ErrChannelClosed}, exitChannel},
		{&kernel.Error{Op: "read", Fd: 5, Errno: 9}, exitChannel},
		{fpvm.ErrRetryBudgetExhausted, exitChannel},
		{errors.New("something else"), exitFailure},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			Fail(t, "exit code for", c.err, "was", got, "expected", c.want)
		}
	}
}

func Require(t *testing.T, err error, text ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, text...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
