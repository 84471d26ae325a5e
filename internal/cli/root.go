package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/mqmods/internal/files/filesystem"
	"github.com/vvka-141/mqmods/internal/logging"
	"github.com/vvka-141/mqmods/internal/services"
	"github.com/vvka-141/mqmods/pkg/mqmods"
)

var rootCmd = &cobra.Command{
	Use:   "mqmods [input_path]",
	Short: "Inspect and migrate MaxQuant parameter files",
	Long: `mqmods parses a MaxQuant parameter file (XML-based) and lists the fixed,
variable and isobaric modifications defined in each parameter group.

With --update it instead rewrites the file for MaxQuant 2.4.13: parameters are
appended, deleted, replaced or given new values line by line, so everything
else in the file is kept byte for byte. The result is written to <file>.new,
the original is kept as <file>.old and the new file takes its place. If
<file>.old already exists, the .new file is left for you to review.

Arguments:
  input_path    MaxQuant parameter file. Wildcards (* and ?) are supported in
                the file name, e.g. MaxQuant*.xml

Options may also come from a YAML parameter file (--param-file) or from the
environment (MQMODS_INPUT, MQMODS_UPDATE, MQMODS_DEDUP_FIRST_SEARCH, also read
from .env). Command line flags win over the parameter file, which wins over
the environment.

Examples:
  # List modifications
  mqmods MaxQuant_Tryp_Stat_CysAlk_Dyn_MetOx_NTermAcet_20ppmParTol.xml

  # List modifications for every matching file
  mqmods -i "MaxQuant*.xml"

  # Migrate parameter files to MaxQuant 2.4.13
  mqmods --update "MaxQuant*.xml"

  # Write a parameter file template, then use it
  mqmods --create-param-file=mqmods.yaml
  mqmods -P mqmods.yaml

Exit Codes:
  0   - Success (including --create-param-file)
  -1  - Any failure (reported as 255 by most shells)`,
	Args:              validateInputArgs,
	ValidArgsFunction: completeParameterFiles,
	RunE:              runRoot,
	SilenceUsage:      true,
}

type rootFlagValues struct {
	input            string
	update           bool
	dedupFirstSearch bool
	paramFile        string
	createParamFile  string
	json             bool
	logFile          string
}

var rootFlags rootFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for mqmods")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	flags := rootCmd.Flags()
	flags.StringVarP(&rootFlags.input, "input", "i", "", "MaxQuant parameter file or file mask (alternative to input_path)")
	flags.BoolVarP(&rootFlags.update, "update", "u", false, "Update the parameter file for MaxQuant 2.4.13 instead of listing modifications")
	flags.BoolVar(&rootFlags.dedupFirstSearch, "dedup-first-search", false, "Skip first-search variable modifications already listed as variable modifications")
	flags.StringVarP(&rootFlags.paramFile, "param-file", "P", "", "Read options from a YAML parameter file")
	flags.StringVar(&rootFlags.paramFile, "conf", "", "Alias for --param-file")
	flags.StringVar(&rootFlags.createParamFile, "create-param-file", "", "Write a parameter file template to the given path (stdout if omitted) and exit")
	flags.BoolVar(&rootFlags.json, "json", false, "Print the run result as JSON on stdout")
	flags.StringVar(&rootFlags.logFile, "log-file", "", "Also write a structured JSON log to this file")

	flags.Lookup("create-param-file").NoOptDefVal = "-"
	_ = flags.MarkHidden("conf")

	_ = rootCmd.RegisterFlagCompletionFunc("input", completeParameterFiles)
	_ = rootCmd.RegisterFlagCompletionFunc("param-file", completeYAMLFiles)
	_ = rootCmd.RegisterFlagCompletionFunc("conf", completeYAMLFiles)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func runRoot(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	opts, err := resolveOptions(cmd, args, os.LookupEnv)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("create-param-file") {
		return writeParamFileTemplate(cmd.OutOrStdout(), opts, rootFlags.createParamFile)
	}

	runConfig := opts.RunConfig()
	if err := runConfig.Validate(); err != nil {
		return fmt.Errorf("%w\n\nUsage: %s", err, cmd.UseLine())
	}

	logger, closeLogger, err := buildLogger(cmd.ErrOrStderr(), runConfig.Verbose, opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLogger()

	// Keep stdout clean for the JSON document.
	reportOut := cmd.OutOrStdout()
	if rootFlags.json {
		reportOut = cmd.ErrOrStderr()
	}

	processor := services.NewProcessor(filesystem.NewOSFileSystem(), logger, reportOut)
	result, runErr := processor.Run(cmd.Context(), runConfig)

	if rootFlags.json {
		if err := writeJSONResult(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	}

	return runErr
}

// buildLogger returns the console logger, fanned out to a zap file logger
// when logFile is set. The returned func closes the file logger.
func buildLogger(w io.Writer, verbose bool, logFile string) (mqmods.Logger, func(), error) {
	console := logging.NewConsoleLoggerWithWriter(w, verbose, writerColorEnabled(w))
	if logFile == "" {
		return console, func() {}, nil
	}

	fileLogger, err := logging.NewFileLogger(logFile, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}
	return logging.NewMultiLogger(console, fileLogger), func() { _ = fileLogger.Close() }, nil
}

type jsonFileResult struct {
	mqmods.FileResult
	Mode string `json:"mode"`
}

type jsonRunResult struct {
	Mode      string           `json:"mode"`
	Succeeded bool             `json:"succeeded"`
	Files     []jsonFileResult `json:"files"`
}

func writeJSONResult(w io.Writer, result mqmods.RunResult) error {
	doc := jsonRunResult{
		Mode:      result.Mode.String(),
		Succeeded: result.Succeeded(),
		Files:     make([]jsonFileResult, 0, len(result.Files)),
	}
	for _, f := range result.Files {
		doc.Files = append(doc.Files, jsonFileResult{FileResult: f, Mode: f.Mode.String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write JSON result: %w", err)
	}
	return nil
}
