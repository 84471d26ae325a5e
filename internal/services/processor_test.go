package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mqmods/internal/files/filesystem"
	"github.com/vvka-141/mqmods/internal/logging"
	"github.com/vvka-141/mqmods/internal/mods"
	"github.com/vvka-141/mqmods/internal/patch"
	"github.com/vvka-141/mqmods/internal/retry"
	"github.com/vvka-141/mqmods/pkg/mqmods"
)

const legacyParams = `<?xml version="1.0" encoding="utf-8"?>
<MaxQuantParams xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
   <fastaFiles>
   </fastaFiles>
   <maxQuantVersion>1.6.17.0</maxQuantVersion>
   <writeMzTab>False</writeMzTab>
   <boxCarMode>False</boxCarMode>
   <restrictMods>
      <string>Oxidation (M)</string>
      <string>Acetyl (Protein N-term)</string>
   </restrictMods>
   <parameterGroups>
      <parameterGroup>
         <msInstrument>0</msInstrument>
         <lcmsRunType>Standard</lcmsRunType>
         <fixedModifications>
            <string>Carbamidomethyl (C)</string>
         </fixedModifications>
         <variableModifications>
            <string>Oxidation (M)</string>
            <string>Acetyl (Protein N-term)</string>
         </variableModifications>
         <intensityThresholdMs1>0</intensityThresholdMs1>
      </parameterGroup>
   </parameterGroups>
</MaxQuantParams>
`

const patchedParams = `<?xml version="1.0" encoding="utf-8"?>
<MaxQuantParams xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
   <fastaFiles>
   </fastaFiles>
   <maxQuantVersion>2.4.13.0</maxQuantVersion>
   <writeMzTab>False</writeMzTab>
   <writeSdrf>False</writeSdrf>
   <restrictMods>
      <string>Oxidation (M)</string>
      <string>Acetyl (Protein N-term)</string>
   </restrictMods>
   <parameterGroups>
      <parameterGroup>
         <andromeda20AltModelPath></andromeda20AltModelPath>
         <andromeda20DefaultModel>False</andromeda20DefaultModel>
         <useAndromeda20>False</useAndromeda20>
         <msInstrument>0</msInstrument>
         <lcmsRunType>Standard</lcmsRunType>
         <fixedModifications>
            <string>Carbamidomethyl (C)</string>
         </fixedModifications>
         <variableModifications>
            <string>Oxidation (M)</string>
            <string>Acetyl (Protein N-term)</string>
         </variableModifications>
         <intensityThresholdMs1Dda>0</intensityThresholdMs1Dda>
         <intensityThresholdMs1Dia>0</intensityThresholdMs1Dia>
      </parameterGroup>
   </parameterGroups>
</MaxQuantParams>
`

type fixture struct {
	fs     *filesystem.MemoryFileSystem
	logger *logging.MemoryLogger
	out    *bytes.Buffer
	proc   *Processor
}

func newFixture(t *testing.T, opts ...ProcessorOption) *fixture {
	t.Helper()

	f := &fixture{
		fs:     filesystem.NewMemoryFileSystem("/data"),
		logger: logging.NewMemoryLogger(),
		out:    &bytes.Buffer{},
	}
	opts = append([]ProcessorOption{WithRenameRetry(retry.NewExecutor(
		retry.NewFileLockClassifier(),
		retry.NewExponentialBackoff(2, retry.WithInitialDelay(time.Millisecond)),
	))}, opts...)
	f.proc = NewProcessor(f.fs, f.logger, f.out, opts...)
	return f
}

func (f *fixture) content(t *testing.T, path string) string {
	t.Helper()
	content, ok := f.fs.Content(path)
	require.True(t, ok, "%s does not exist", path)
	return content
}

func extractConfig(input string) mqmods.RunConfig {
	return mqmods.RunConfig{InputPath: input, Mode: mqmods.ModeExtract}
}

func updateConfig(input string) mqmods.RunConfig {
	return mqmods.RunConfig{InputPath: input, Mode: mqmods.ModeUpdate}
}

func TestNewProcessor_NilArgs(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/")
	logger := logging.NewNullLogger()
	var out bytes.Buffer

	assert.Panics(t, func() { NewProcessor(nil, logger, &out) })
	assert.Panics(t, func() { NewProcessor(fsys, nil, &out) })
	assert.Panics(t, func() { NewProcessor(fsys, logger, nil) })
}

func TestRun_InvalidConfig(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.Run(context.Background(), mqmods.RunConfig{Mode: mqmods.ModeExtract})
	assert.ErrorIs(t, err, mqmods.ErrInvalidConfig)
}

func TestRun_Extract(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)

	result, err := f.proc.Run(context.Background(), extractConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.True(t, result.Succeeded())
	assert.Equal(t, 1, result.Files[0].GroupCount)
	assert.Empty(t, result.Files[0].Warnings)

	want := strings.Join([]string{
		"",
		"    <fixedModifications>",
		"        <string>Carbamidomethyl (C)</string>",
		"    </fixedModifications>",
		"    <variableModifications>",
		"        <string>Oxidation (M)</string>",
		"        <string>Acetyl (Protein N-term)</string>",
		"    </variableModifications>",
		"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, f.out.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, f.logger.Contains(logging.LevelInfo, "Reading: /data/mqpar.xml"))
	assert.Equal(t, legacyParams, f.content(t, "/data/mqpar.xml"), "extraction never writes")
	assert.False(t, filesystem.Exists(f.fs, "/data/mqpar.xml.new"))
}

func TestRun_ExtractTwiceIsIdentical(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)

	_, err := f.proc.Run(context.Background(), extractConfig("/data/mqpar.xml"))
	require.NoError(t, err)
	first := f.out.String()
	f.out.Reset()

	_, err = f.proc.Run(context.Background(), extractConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	assert.Equal(t, first, f.out.String())
}

func TestRun_ExtractNoParameterGroups(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/empty.xml", "<MaxQuantParams><restrictMods/></MaxQuantParams>")

	result, err := f.proc.Run(context.Background(), extractConfig("/data/empty.xml"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	require.Len(t, result.Files, 1)
	assert.False(t, result.Files[0].Success)
	assert.ErrorIs(t, result.Files[0].Err, mods.ErrNoParameterGroups)
	assert.Empty(t, f.out.String(), "nothing is printed for a file without groups")
	assert.True(t, f.logger.Contains(logging.LevelWarning, "missing the <parameterGroup> element"))
	assert.True(t, f.logger.Contains(logging.LevelWarning, "Error processing /data/empty.xml"))
}

func TestRun_ExtractMalformedXML(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/bad.xml", "<MaxQuantParams>\n<parameterGroups>\n")

	result, err := f.proc.Run(context.Background(), extractConfig("/data/bad.xml"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	var pfErr *mods.ParamFileError
	assert.ErrorAs(t, result.Files[0].Err, &pfErr)
	assert.NotEmpty(t, f.logger.Messages(logging.LevelError))
}

func TestRun_ExtractLogsRestrictedWarnings(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", strings.Replace(legacyParams,
		"<string>Acetyl (Protein N-term)</string>\n   </restrictMods>",
		"<string>Phospho (STY)</string>\n   </restrictMods>", 1))

	result, err := f.proc.Run(context.Background(), extractConfig("/data/mqpar.xml"))
	require.NoError(t, err, "restricted mod warnings do not fail the file")

	assert.Len(t, result.Files[0].Warnings, 2)
	assert.True(t, f.logger.Contains(logging.LevelWarning, "Dynamic mod Phospho (STY) is defined in the <restrictMods> section, which means"))
	assert.True(t, f.logger.Contains(logging.LevelWarning, "Dynamic mod Phospho (STY) is defined in the <restrictMods> section, but is not defined"))
}

func TestRun_FileNotFound(t *testing.T) {
	f := newFixture(t)

	result, err := f.proc.Run(context.Background(), extractConfig("missing.xml"))

	assert.ErrorIs(t, err, mqmods.ErrInputNotFound)
	assert.Empty(t, result.Files)
	assert.Equal(t, []string{
		"File not found: missing.xml",
		"Full path:      /data/missing.xml",
	}, f.logger.Messages(logging.LevelWarning))
}

func TestRun_MaskWithoutMatches(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/notes.txt", "")

	_, err := f.proc.Run(context.Background(), extractConfig("/data/*.xml"))

	assert.ErrorIs(t, err, mqmods.ErrNoMatchingFiles)
	assert.Equal(t, []string{"No files matching *.xml were found in /data"}, f.logger.Messages(logging.LevelWarning))
}

func TestRun_MaskAggregatesFailures(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/a.xml", legacyParams)
	f.fs.AddFile("/data/b.xml", "<MaxQuantParams/>")
	f.fs.AddFile("/data/c.xml", "not xml")

	result, err := f.proc.Run(context.Background(), extractConfig("/data/*.XML"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	require.Len(t, result.Files, 3, "a failure does not stop the run")
	assert.True(t, result.Files[0].Success)

	var failed []string
	for _, r := range result.FailedFiles() {
		failed = append(failed, r.Path)
	}
	assert.Equal(t, []string{"/data/b.xml", "/data/c.xml"}, failed)

	assert.True(t, f.logger.Contains(logging.LevelWarning, "Error processing 2 files"))
	assert.True(t, f.logger.Contains(logging.LevelInfo, "  /data/b.xml"))
	assert.True(t, f.logger.Contains(logging.LevelInfo, "  /data/c.xml"))
}

func TestRun_Update(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	if diff := cmp.Diff(strings.Split(patchedParams, "\n"), strings.Split(f.content(t, "/data/mqpar.xml"), "\n")); diff != "" {
		t.Errorf("patched file mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, legacyParams, f.content(t, "/data/mqpar.xml.old"))
	assert.False(t, filesystem.Exists(f.fs, "/data/mqpar.xml.new"))

	file := result.Files[0]
	assert.True(t, file.Replaced)
	assert.Equal(t, "/data/mqpar.xml", file.OutputPath)
	require.NotNil(t, file.Patch)
	assert.Equal(t, mqmods.PatchCounts{Appended: 2, Deleted: 1, Replaced: 1, Updated: 1, Unchanged: 1}, *file.Patch)
	assert.NotEqual(t, file.ChecksumBefore, file.ChecksumAfter)

	assert.True(t, f.logger.Contains(logging.LevelInfo, "Updating: /data/mqpar.xml"))
	assert.True(t, f.logger.Contains(logging.LevelInfo, "Updated parameters in /data/mqpar.xml"))
	assert.Empty(t, f.out.String(), "update mode prints no report")
}

// layoutOnlyCalculator reports every change as layout-only.
type layoutOnlyCalculator struct{}

func (layoutOnlyCalculator) CalculateRaw(content []byte) string {
	return fmt.Sprintf("raw-%d", len(content))
}

func (layoutOnlyCalculator) CalculateNormalized([]byte) string {
	return "normalized"
}

func TestRun_UpdateWithChecksumCalculator(t *testing.T) {
	f := newFixture(t, WithChecksumCalculator(layoutOnlyCalculator{}))
	f.fs.AddFile("/data/mqpar.xml", legacyParams)

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	file := result.Files[0]
	assert.Equal(t, fmt.Sprintf("raw-%d", len(legacyParams)), file.ChecksumBefore)
	assert.Equal(t, fmt.Sprintf("raw-%d", len(patchedParams)), file.ChecksumAfter)
	assert.True(t, f.logger.Contains(logging.LevelVerbose, "Only layout changed in mqpar.xml"))
	assert.False(t, f.logger.Contains(logging.LevelVerbose, "Applied "))
}

func TestRun_UpdateKeepsExistingBackup(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)
	f.fs.AddFile("/data/mqpar.xml.old", "previous backup")

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err, "an existing backup is not a failure")

	assert.Equal(t, legacyParams, f.content(t, "/data/mqpar.xml"))
	assert.Equal(t, "previous backup", f.content(t, "/data/mqpar.xml.old"))
	assert.Equal(t, patchedParams, f.content(t, "/data/mqpar.xml.new"))

	assert.False(t, result.Files[0].Replaced)
	assert.Equal(t, "/data/mqpar.xml.new", result.Files[0].OutputPath)
	assert.True(t, f.logger.Contains(logging.LevelInfo,
		"Created mqpar.xml.new, but not replacing the original file since the '.old' file already exists: /data/mqpar.xml.old"))
}

func TestRun_UpdateUnchangedFile(t *testing.T) {
	current := "<MaxQuantParams>\n   <fastaFiles>\n   </fastaFiles>\n</MaxQuantParams>\n"
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", current)

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	file := result.Files[0]
	assert.Equal(t, file.ChecksumBefore, file.ChecksumAfter)
	assert.Zero(t, file.Patch.Total())
	assert.True(t, f.logger.Contains(logging.LevelVerbose, "No parameters changed in mqpar.xml"))
	assert.Equal(t, current, f.content(t, "/data/mqpar.xml"))
}

func TestRun_UpdatePreservesCRLF(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", strings.ReplaceAll(legacyParams, "\n", "\r\n"))

	_, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	assert.Equal(t, strings.ReplaceAll(patchedParams, "\n", "\r\n"), f.content(t, "/data/mqpar.xml"))
}

func TestRun_UpdateCustomRecipe(t *testing.T) {
	recipe, err := patch.NewRecipe(patch.DeleteRule("<msInstrument>"))
	require.NoError(t, err)

	f := newFixture(t, WithRecipe(recipe))
	f.fs.AddFile("/data/mqpar.xml", legacyParams)

	_, err = f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))
	require.NoError(t, err)

	assert.Equal(t,
		strings.Replace(legacyParams, "         <msInstrument>0</msInstrument>\n", "", 1),
		f.content(t, "/data/mqpar.xml"))
}

func TestRun_UpdateCreateFails(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)
	f.fs.Fail("/data/mqpar.xml.new", errors.New("read-only share"))

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	assert.False(t, result.Files[0].Success)
	assert.Equal(t, legacyParams, f.content(t, "/data/mqpar.xml"))
	assert.False(t, filesystem.Exists(f.fs, "/data/mqpar.xml.old"))
}

func TestRun_UpdateBackupRenameFails(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)
	f.fs.FailRename("/data/mqpar.xml", errors.New("access denied"))

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	assert.Contains(t, result.Files[0].Message, "failed to back up")
	assert.Equal(t, legacyParams, f.content(t, "/data/mqpar.xml"), "original untouched")
	assert.Equal(t, patchedParams, f.content(t, "/data/mqpar.xml.new"))
	assert.Empty(t, retryMessages(f.logger), "fatal rename errors are not retried")
}

func TestRun_UpdateRetriesBusyRename(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/mqpar.xml", legacyParams)
	f.fs.FailRename("/data/mqpar.xml", retry.ErrFileBusy)

	result, err := f.proc.Run(context.Background(), updateConfig("/data/mqpar.xml"))

	assert.ErrorIs(t, err, mqmods.ErrProcessingFailed)
	assert.ErrorIs(t, result.Files[0].Err, retry.ErrFileBusy)
	assert.Len(t, retryMessages(f.logger), 2, "both retries are logged before giving up")
}

func retryMessages(logger *logging.MemoryLogger) []string {
	var msgs []string
	for _, m := range logger.Messages(logging.LevelVerbose) {
		if strings.HasPrefix(m, "File is busy, retrying") {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.fs.AddFile("/data/a.xml", legacyParams)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.proc.Run(ctx, extractConfig("/data/a.xml"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Files)
}
