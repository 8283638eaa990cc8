package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jogador/internal/ffi"
	"github.com/mcoot/jogador/internal/ffi/mocks"
)

type CLISuite struct {
	suite.Suite
	loader  *mocks.MockLoader
	libPath string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	for _, key := range []string{"LIBRARY", "ENCODING", "NAMES", "OUTPUT", "LOG_LEVEL", "LOG_FORMAT", "VERBOSE", "CONFIG"} {
		s.T().Setenv("JOGADOR_"+key, "")
	}

	s.loader = mocks.NewMockLoader()
	s.libPath = filepath.Join(s.T().TempDir(), "libjogador.so")
	s.Require().NoError(os.WriteFile(s.libPath, nil, 0o600))
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
}

func (s *CLISuite) run(args ...string) int {
	return Run(append([]string{"--lib", s.libPath, "--log-format", "json"}, args...), s.stdout, s.stderr, s.loader)
}

func (s *CLISuite) TestDescribeDefaultsToLucero() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("describe")
	s.Require().Equal(ExitOK, code, s.stderr.String())

	s.Require().Equal(1, module.CallCount(ffi.DescribePlayerSymbol))
	s.Equal("Lucero\x00", string(module.Calls[ffi.DescribePlayerSymbol][0]))
	s.Empty(s.stdout.String())
}

func (s *CLISuite) TestDescribeEachArgument() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("describe", "Tinga", "Moisés")
	s.Require().Equal(ExitOK, code, s.stderr.String())

	calls := module.Calls[ffi.DescribePlayerSymbol]
	s.Require().Len(calls, 2)
	s.Equal("Tinga\x00", string(calls[0]))
	s.Equal("Moisés\x00", string(calls[1]))
	s.Equal([]string{s.libPath}, s.loader.Opened, "module must be opened exactly once")
}

func (s *CLISuite) TestDescribeJSONLeavesStdoutToModule() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("-o", "json", "describe", "Lucero")
	s.Require().Equal(ExitOK, code, s.stderr.String())

	s.Equal(1, module.CallCount(ffi.DescribePlayerSymbol))
	s.Empty(s.stdout.String())
}

func (s *CLISuite) TestFlagsOverrideEnvironment() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)
	s.T().Setenv("JOGADOR_LIBRARY", filepath.Join(s.T().TempDir(), "nope", "libjogador.so"))
	s.T().Setenv("JOGADOR_ENCODING", "latin1")

	code := Run([]string{"--lib", s.libPath, "--encoding", "utf-8", "describe", "Moisés"}, s.stdout, s.stderr, s.loader)
	s.Require().Equal(ExitOK, code, s.stderr.String())

	s.Equal([]string{s.libPath}, s.loader.Opened)
	s.Require().Equal(1, module.CallCount(ffi.DescribePlayerSymbol))
	s.Equal("Moisés\x00", string(module.Calls[ffi.DescribePlayerSymbol][0]))
}

func (s *CLISuite) TestEnvironmentUsedWithoutFlags() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)
	s.T().Setenv("JOGADOR_LIBRARY", s.libPath)
	s.T().Setenv("JOGADOR_ENCODING", "latin1")

	code := Run([]string{"describe", "Moisés"}, s.stdout, s.stderr, s.loader)
	s.Require().Equal(ExitOK, code, s.stderr.String())

	s.Equal([]byte{'M', 'o', 'i', 's', 0xE9, 's', 0x00}, module.Calls[ffi.DescribePlayerSymbol][0])
}

func (s *CLISuite) TestEmptyLibraryExitsWithLoadCode() {
	code := Run([]string{"--lib", "", "describe"}, s.stdout, s.stderr, s.loader)

	s.Equal(ExitLoad, code)
	s.Contains(s.stderr.String(), "no library path configured")
	s.Empty(s.loader.Opened)
}

func (s *CLISuite) TestDescribeNamesFromEnvironment() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)
	s.T().Setenv("JOGADOR_NAMES", "Marinho,Pikachu")

	code := s.run("describe")
	s.Require().Equal(ExitOK, code, s.stderr.String())
	s.Equal(2, module.CallCount(ffi.DescribePlayerSymbol))
}

func (s *CLISuite) TestDescribeLatin1() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("--encoding", "latin1", "describe", "Moisés")
	s.Require().Equal(ExitOK, code, s.stderr.String())
	s.Equal([]byte{'M', 'o', 'i', 's', 0xE9, 's', 0x00}, module.Calls[ffi.DescribePlayerSymbol][0])
}

func (s *CLISuite) TestMissingLibraryExitsWithLoadCode() {
	code := Run([]string{"--lib", filepath.Join(s.T().TempDir(), "missing.so"), "describe"}, s.stdout, s.stderr, s.loader)

	s.Equal(ExitLoad, code)
	s.Contains(s.stderr.String(), "Error: load native module")
	s.Empty(s.loader.Opened)
}

func (s *CLISuite) TestMissingSymbolExitsWithSymbolCode() {
	s.loader.Add(s.libPath, "apresenta_time")

	code := s.run("check")

	s.Equal(ExitSymbol, code)
	s.Contains(s.stderr.String(), "descreve_jogador")
}

func (s *CLISuite) TestEncodingErrorExitsWithEncodingCode() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("--encoding", "latin1", "describe", "Łukasz")

	s.Equal(ExitEncoding, code)
	s.Zero(module.CallCount(ffi.DescribePlayerSymbol))
}

func (s *CLISuite) TestJSONErrorOutput() {
	code := Run([]string{"-o", "json", "--lib", filepath.Join(s.T().TempDir(), "missing.so"), "check"}, s.stdout, s.stderr, s.loader)
	s.Require().Equal(ExitLoad, code)

	var resp struct {
		Error struct {
			Message string `json:"message"`
			Kind    string `json:"kind"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(s.stderr.Bytes(), &resp))
	s.Equal("load", resp.Error.Kind)
	s.Contains(resp.Error.Message, "missing.so")
}

func (s *CLISuite) TestCheck() {
	module := s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("-o", "json", "check")
	s.Require().Equal(ExitOK, code, s.stderr.String())

	var result CheckResult
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &result))
	s.True(result.OK)
	s.Equal([]string{ffi.DescribePlayerSymbol}, result.Symbols)
	s.Equal("utf-8", result.Encoding)
	s.Zero(module.CallCount(ffi.DescribePlayerSymbol), "check must not call into the module")
	s.True(module.Closed)
}

func (s *CLISuite) TestCheckText() {
	s.loader.Add(s.libPath, ffi.DescribePlayerSymbol)

	code := s.run("check")
	s.Require().Equal(ExitOK, code, s.stderr.String())
	s.Contains(s.stdout.String(), "Symbols: descreve_jogador")
	s.Contains(s.stdout.String(), "OK")
}

func (s *CLISuite) TestEncodeText() {
	code := s.run("encode", "Lucero")
	s.Require().Equal(ExitOK, code, s.stderr.String())
	s.Equal("4C 75 63 65 72 6F 00\n", s.stdout.String())
	s.Empty(s.loader.Opened, "encode must not load the module")
}

func (s *CLISuite) TestEncodeJSON() {
	code := s.run("-o", "json", "encode", "Moisés")
	s.Require().Equal(ExitOK, code, s.stderr.String())

	var result EncodeResult
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &result))
	s.Equal("Moisés", result.Name)
	s.Equal(len("Moisés")+1, result.Length)
	s.Equal("4D 6F 69 73 C3 A9 73 00", result.Hex)
}

func (s *CLISuite) TestInvalidConfigIsGenericError() {
	code := s.run("--output", "yaml", "encode", "Lucero")
	s.Equal(ExitError, code)
	s.Contains(s.stderr.String(), "output")
}

func (s *CLISuite) TestExitCodeUnwraps() {
	wrapped := fmt.Errorf("describe: %w", &ffi.SymbolError{Symbol: "x", Err: errors.New("gone")})
	s.Equal(ExitSymbol, ExitCode(wrapped))
	s.Equal(ExitOK, ExitCode(nil))
	s.Equal(ExitError, ExitCode(errors.New("boom")))
}
