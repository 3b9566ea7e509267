// fraud-score is a one-shot CLI that scores a single message from a file or
// stdin and prints the verdict. It runs the same pipeline as the server,
// with caching disabled, plus a minimal feature extractor so messages can
// be scored without an upstream extraction service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/adapters/cache"
	"github.com/mikey/fraud-scorer/internal/config"
	"github.com/mikey/fraud-scorer/internal/core"
	"github.com/mikey/fraud-scorer/internal/factory"
	"github.com/mikey/fraud-scorer/internal/logging"
	"github.com/mikey/fraud-scorer/internal/whitelist"
)

var (
	inputFile  = flag.String("file", "", "Input message file (use stdin if not specified)")
	sender     = flag.String("sender", "", "Sender header of the message")
	threshold  = flag.Float64("threshold", 0.5, "Fraud decision threshold")
	trusted    = flag.String("trusted", "", "Comma-separated list of trusted sender headers")
	jsonOut    = flag.Bool("json", false, "Print the verdict as JSON")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file",
			zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	content, err := readMessage(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read message", zap.Error(err))
	}

	var trustedSenders []string
	if *trusted != "" {
		trustedSenders = strings.Split(*trusted, ",")
	} else {
		trustedSenders = cfg.GetStringSlice("fraud.trusted_senders")
	}

	modelFactory := factory.NewModelFactory(cfg, logger)
	ensemble := core.NewEnsembleScorer(modelFactory.CreateSignalModels(), cfg.GetFraud().Threshold, logger)
	predictor := core.NewPredictor(
		ensemble,
		cache.NewNoopCache(logger),
		whitelist.NewChecker(trustedSenders, logger),
		logger,
		core.PredictorOptions{CacheEnabled: false},
	)

	req := &core.InferenceRequest{
		Content:      content,
		SenderHeader: *sender,
		Features:     extractFeatures(content, *sender),
	}

	verdict, err := predictor.Predict(context.Background(), req)
	if err != nil {
		logger.Fatal("Prediction failed", zap.Error(err))
	}

	printVerdict(verdict)
}

// createConfigFromFlags builds a configuration from the command line flags.
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()
	v.Set("fraud.threshold", *threshold)
	v.Set("cache.enabled", false)
	return config.NewFromViper(v)
}

func readMessage(path string) (string, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

var (
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\- ]{8,}\d`)

	urgentWords  = []string{"urgent", "immediately", "now", "expire", "blocked", "suspended"}
	kycKeywords  = []string{"kyc", "know your customer", "verify", "verification"}
	bankKeywords = []string{"bank", "rbi", "account", "official"}
)

// extractFeatures computes the structural feature set from raw text. The
// server receives these pre-computed from an upstream extractor; the CLI
// derives a minimal equivalent so it can run standalone.
func extractFeatures(content, senderHeader string) core.FeatureSet {
	lower := strings.ToLower(content)
	runes := []rune(content)

	urls := urlPattern.FindAllString(content, -1)
	phones := phonePattern.FindAllString(content, -1)

	urgentCount := 0
	for _, word := range urgentWords {
		urgentCount += strings.Count(lower, word)
	}

	var special, capital, digits int
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			capital++
		case unicode.IsDigit(r):
			digits++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}

	features := core.FeatureSet{
		Content:          content,
		SenderHeader:     senderHeader,
		MessageLength:    len(runes),
		HasLinks:         len(urls) > 0,
		LinkCount:        len(urls),
		ExtractedURLs:    urls,
		HasPhoneNumber:   len(phones) > 0,
		PhoneNumberCount: len(phones),
		HasUrgentWords:   urgentCount > 0,
		UrgentWordCount:  urgentCount,
		HasKYCKeywords:   containsAny(lower, kycKeywords),
		HasBankNames:     containsAny(lower, bankKeywords),
	}

	if len(runes) > 0 {
		features.SpecialCharRatio = float64(special) / float64(len(runes))
		features.CapitalRatio = float64(capital) / float64(len(runes))
		features.NumberRatio = float64(digits) / float64(len(runes))
	}

	return features
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func printVerdict(verdict *core.Verdict) {
	if *jsonOut {
		out, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			fmt.Printf("Failed to encode verdict: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	label := "LEGITIMATE"
	if verdict.IsFraud {
		label = "FRAUD"
	}
	fmt.Printf("Verdict:     %s\n", label)
	fmt.Printf("Score:       %.3f\n", verdict.FraudScore)
	fmt.Printf("Type:        %s\n", verdict.FraudType)
	fmt.Printf("Confidence:  %.2f\n", verdict.Confidence)
	fmt.Printf("Explanation: %s\n", verdict.Explanation)
}
