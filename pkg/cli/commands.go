// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JackrabbitLabs/fmapi/pkg/config"
	"github.com/JackrabbitLabs/fmapi/pkg/fmapi"
	"github.com/JackrabbitLabs/fmapi/pkg/log"
	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
	"github.com/JackrabbitLabs/fmapi/pkg/version"
)

// allOpcodes lists every command this codec understands.
var allOpcodes = []fmapi.Opcode{
	fmapi.OpISCIdentify,
	fmapi.OpISCBgStatus,
	fmapi.OpISCGetMsgLimit,
	fmapi.OpISCSetMsgLimit,
	fmapi.OpPSCIdentifySwitch,
	fmapi.OpPSCPortState,
	fmapi.OpPSCPortControl,
	fmapi.OpPSCPPBConfig,
	fmapi.OpVSCInfo,
	fmapi.OpVSCBind,
	fmapi.OpVSCUnbind,
	fmapi.OpVSCGenAER,
	fmapi.OpMPCTunnel,
	fmapi.OpMPCConfig,
	fmapi.OpMPCMemory,
	fmapi.OpMCCInfo,
	fmapi.OpMCCGetAlloc,
	fmapi.OpMCCSetAlloc,
	fmapi.OpMCCGetQoSControl,
	fmapi.OpMCCSetQoSControl,
	fmapi.OpMCCQoSStatus,
	fmapi.OpMCCGetQoSBWAlloc,
	fmapi.OpMCCSetQoSBWAlloc,
	fmapi.OpMCCGetQoSBWLimit,
	fmapi.OpMCCSetQoSBWLimit,
}

// RegisterCommands registers all fmtool CLI commands.
func RegisterCommands() {
	RegisterCallback(
		[]string{"", "help"},
		func(s []string) error {
			return unexpectedArgsError(s, 2)
		},
		helpFunc,
	)
	RegisterCallback(
		[]string{"", "version"},
		func(s []string) error {
			return unexpectedArgsError(s, 2)
		},
		versionFunc,
	)
	RegisterCallback(
		[]string{"", "strings"},
		func(s []string) error {
			return unexpectedArgsError(s, 2)
		},
		stringsFunc,
	)
	RegisterCallback(
		[]string{"", "verify"},
		func(s []string) error {
			return unexpectedArgsError(s, 2)
		},
		verifyFunc,
	)
	RegisterCallback(
		[]string{"", "decode"},
		func(s []string) error {
			if len(s) < 3 {
				return fmt.Errorf("HEX is not provided")
			}
			return nil
		},
		decodeFunc,
	)
	RegisterCallback(
		[]string{"", "tunnel"},
		func(s []string) error {
			if len(s) < 3 {
				return fmt.Errorf("PPID is not provided")
			}
			return nil
		},
		tunnelFunc,
	)
	RegisterCallback(
		[]string{"", "identify"},
		func(s []string) error {
			if len(s) < 3 {
				return fmt.Errorf("device profile file is not provided")
			}
			return unexpectedArgsError(s, 3)
		},
		identifyFunc,
	)
}

var helpFunc = func(s []string) error {
	helpFormatter{
		appName: binaryName,
		entries: []helpCmdEntry{
			{
				cmd:  "help",
				help: []string{"Show this help message."},
			},
			{
				cmd:  "version",
				help: []string{"Show version."},
			},
			{
				cmd:  "decode <HEX>",
				help: []string{"Decode a hex encoded FM API message and print it."},
			},
			{
				cmd: "tunnel <PPID> [<HEX>]",
				help: []string{
					"Wrap a FM API message in a Tunnel Management Command",
					"addressed to the given physical port. If no hex input is",
					"provided, a Get LD Info request is wrapped.",
				},
			},
			{
				cmd: "identify <PROFILE>",
				help: []string{
					"Load a TOML device profile and print the encoded Identify",
					"and Identify Switch Device responses the device would return.",
				},
			},
		},
		advanced: []helpCmdEntry{
			{
				cmd:  "strings",
				help: []string{"Print the opcode and return code tables."},
			},
			{
				cmd:  "verify",
				help: []string{"Round trip every command through the codec."},
			},
		},
	}.print()
	return nil
}

var versionFunc = func(s []string) error {
	v, err := version.Parse(version.AppVersion)
	if err != nil {
		return err
	}
	log.Infof("%s", v.String())
	return nil
}

var stringsFunc = func(s []string) error {
	log.Infof("Opcodes:")
	for _, op := range allOpcodes {
		log.Infof("  0x%04X  %-36s req: %-16v rsp: %v",
			uint16(op), op, fmapi.ReqObjectKind(op), fmapi.RspObjectKind(op))
	}
	log.Infof("")
	log.Infof("Return codes:")
	for rc := fmapi.RCSuccess; rc <= fmapi.RCInvalidPayloadLen; rc++ {
		log.Infof("  0x%04X  %v", uint16(rc), rc)
	}
	return nil
}

// verifyFunc encodes and decodes a message for every opcode in both
// directions and checks that the bytes survive the round trip.
var verifyFunc = func(s []string) error {
	if _, found := os.LookupEnv("FMTOOL_LOG_NO_TIMESTAMP"); found {
		log.SetFormatter(&log.DaemonFormatter{NoTimestamp: true})
	} else {
		log.SetFormatter(&log.DaemonFormatter{})
	}

	var failed int
	for _, op := range allOpcodes {
		for _, category := range []fmapi.MessageCategory{fmapi.CategoryReq, fmapi.CategoryRsp} {
			if err := verifyRoundTrip(op, category); err != nil {
				log.Errorf("%v %v: %v", op, category, err)
				failed++
				continue
			}
			log.Infof("%v %v: OK", op, category)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d round trips failed", failed)
	}
	return nil
}

func verifyRoundTrip(op fmapi.Opcode, category fmapi.MessageCategory) error {
	var kind fmapi.ObjectKind
	if category == fmapi.CategoryReq {
		kind = fmapi.ReqObjectKind(op)
	} else {
		kind = fmapi.RspObjectKind(op)
	}
	obj, err := fmapi.NewObject(kind)
	if err != nil {
		return err
	}

	var msg *fmapi.Message
	var req *fmapi.Message
	if category == fmapi.CategoryReq {
		msg, err = fmapi.NewRequest(op, obj)
	} else {
		reqObj, reqErr := fmapi.NewObject(fmapi.ReqObjectKind(op))
		if reqErr != nil {
			return reqErr
		}
		req, reqErr = fmapi.NewRequest(op, reqObj)
		if reqErr != nil {
			return reqErr
		}
		if rsp, ok := obj.(*fmapi.VSCInfoRsp); ok {
			rsp.Req = req.Obj.(*fmapi.VSCInfoReq)
		}
		msg, err = fmapi.NewResponse(op, obj, fmapi.RCSuccess)
	}
	if err != nil {
		return err
	}

	encoded, err := msg.Encode()
	if err != nil {
		return fmt.Errorf(stderror.EncodeMessageFailedErr, err)
	}
	decoded, _, err := fmapi.DecodeResponse(encoded, req)
	if err != nil {
		return fmt.Errorf(stderror.DecodeMessageFailedErr, err)
	}
	again, err := decoded.Encode()
	if err != nil {
		return fmt.Errorf(stderror.EncodeMessageFailedErr, err)
	}
	if !bytes.Equal(encoded, again) {
		return fmt.Errorf("bytes differ after round trip: %x != %x", encoded, again)
	}
	return nil
}

var decodeFunc = func(s []string) error {
	src, err := parseHexInput(s[2:])
	if err != nil {
		return err
	}
	msg, n, err := fmapi.Decode(src)
	if err != nil {
		return stderror.WrapErrorWithType(fmt.Errorf(stderror.DecodeMessageFailedErr, err), stderror.DECODE_ERROR)
	}
	log.Infof("decoded %d bytes: %s", n, msg)
	if msg.Hdr.Opcode == fmapi.OpMPCTunnel {
		inner, err := msg.Tunneled()
		if err != nil {
			return err
		}
		log.Infof("tunneled: %s", inner)
	}
	return nil
}

var tunnelFunc = func(s []string) error {
	ppid, err := strconv.ParseUint(s[2], 0, 8)
	if err != nil {
		return fmt.Errorf("PPID %q is invalid: %w", s[2], err)
	}

	var inner *fmapi.Message
	if len(s) > 3 {
		src, err := parseHexInput(s[3:])
		if err != nil {
			return err
		}
		inner, _, err = fmapi.Decode(src)
		if err != nil {
			return fmt.Errorf(stderror.DecodeMessageFailedErr, err)
		}
	} else {
		inner = fmapi.NewLDInfoReq()
	}

	msg, err := fmapi.NewTunnelReq(uint8(ppid), inner)
	if err != nil {
		return err
	}
	encoded, err := msg.Encode()
	if err != nil {
		return stderror.WrapErrorWithType(fmt.Errorf(stderror.EncodeMessageFailedErr, err), stderror.ENCODE_ERROR)
	}
	log.Infof("%s", msg)
	log.Infof("%d bytes: %x", len(encoded), encoded)
	return nil
}

var identifyFunc = func(s []string) error {
	profile, err := config.LoadProfile(s[2])
	if err != nil {
		return err
	}
	levelStr, err := profile.LogLevel()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	for _, msg := range []*fmapi.Message{
		mustResponse(fmapi.OpISCIdentify, profile.IdentityRsp()),
		mustResponse(fmapi.OpPSCIdentifySwitch, profile.SwitchRsp()),
	} {
		encoded, err := msg.Encode()
		if err != nil {
			return fmt.Errorf(stderror.EncodeMessageFailedErr, err)
		}
		log.Infof("%s", msg)
		log.Infof("%d bytes: %x", len(encoded), encoded)
	}
	return nil
}

func mustResponse(op fmapi.Opcode, obj fmapi.Object) *fmapi.Message {
	msg, err := fmapi.NewResponse(op, obj, fmapi.RCSuccess)
	if err != nil {
		panic(err)
	}
	return msg
}

func parseHexInput(args []string) ([]byte, error) {
	s := strings.Join(args, "")
	s = strings.TrimPrefix(s, "0x")
	src, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf(stderror.ReadInputFailedErr, err)
	}
	return src, nil
}
