package patch

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTag indicates two rules were registered for the same tag.
	ErrDuplicateTag = errors.New("duplicate recipe tag")

	// ErrInvalidRule indicates a rule is malformed.
	ErrInvalidRule = errors.New("invalid recipe rule")
)

// Recipe maps tag names to rules. It is immutable once built and safe for
// concurrent reads.
type Recipe struct {
	rules map[string]Rule
	order []string
}

// NewRecipe builds a recipe from rules, keeping registration order.
// Fails if a tag is registered twice or a rule is malformed.
func NewRecipe(rules ...Rule) (*Recipe, error) {
	recipe := &Recipe{
		rules: make(map[string]Rule, len(rules)),
		order: make([]string, 0, len(rules)),
	}

	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, err
		}
		if _, exists := recipe.rules[rule.TagName]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, rule.TagName)
		}

		rule.Lines = append([]string(nil), rule.Lines...)
		recipe.rules[rule.TagName] = rule
		recipe.order = append(recipe.order, rule.TagName)
	}

	return recipe, nil
}

// Lookup returns the rule registered for tagName, e.g. "<boxCarMode>".
func (r *Recipe) Lookup(tagName string) (Rule, bool) {
	rule, ok := r.rules[tagName]
	if !ok {
		return Rule{}, false
	}
	rule.Lines = append([]string(nil), rule.Lines...)
	return rule, true
}

// Len returns the number of rules.
func (r *Recipe) Len() int {
	return len(r.order)
}

// Rules returns a copy of every rule in registration order.
func (r *Recipe) Rules() []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, tag := range r.order {
		rule, _ := r.Lookup(tag)
		rules = append(rules, rule)
	}
	return rules
}

// DefaultRecipe returns the migration that brings an older MaxQuant parameter
// file in line with the 2.4.13 schema.
func DefaultRecipe() (*Recipe, error) {
	return NewRecipe(defaultRules()...)
}

func defaultRules() []Rule {
	return []Rule{
		AppendRule("<deNovoUseA2Score>",
			"<deNovoMassClusterTolDa>0</deNovoMassClusterTolDa>",
			"<deNovoScalingFactor>0</deNovoScalingFactor>"),

		AppendRule("<writeMzTab>",
			"<writeSdrf>False</writeSdrf>"),

		AppendRule("<proteinGroupingFile>",
			"<useAndromeda20>False</useAndromeda20>",
			"<useAndromeda20DefaultModel>False</useAndromeda20DefaultModel>",
			"<andromeda20AltModelPath></andromeda20AltModelPath>",
			"<intensityPredictionFolder></intensityPredictionFolder>"),

		AppendNestedRule("<parameterGroup>",
			"<andromeda20AltModelPath></andromeda20AltModelPath>",
			"<andromeda20DefaultModel>False</andromeda20DefaultModel>",
			"<useAndromeda20>False</useAndromeda20>"),

		AppendRule("<lfqMinRatioCount>",
			"<lfqMinRatioCountDia>2</lfqMinRatioCountDia>",
			"<lfqPrioritizeMs1Dia>True</lfqPrioritizeMs1Dia>"),

		AppendRule("</diaMsmsPaths>",
			"<diaLabelIndsForLibraryMatch>",
			"</diaLabelIndsForLibraryMatch>"),

		AppendRule("<diaScoreN>",
			"<diaScoreNAdditional>0</diaScoreNAdditional>"),

		AppendRule("<diaTopNForQuant>",
			"<diaTopNCorrelationForQuant>0</diaTopNCorrelationForQuant>",
			"<diaFragmentCorrelationForQuant>0</diaFragmentCorrelationForQuant>"),

		AppendRule("<diaMinPrecursorScore>",
			"<diaUseProfileCorrelation>False</diaUseProfileCorrelation>"),

		AppendRule("<diaTransferQvalue>",
			"<diaTransferQvalueBetweenLabels>0</diaTransferQvalueBetweenLabels>",
			"<diaTransferQvalueBetweenFractions>0</diaTransferQvalueBetweenFractions>",
			"<diaTransferQvalueBetweenFaims>0</diaTransferQvalueBetweenFaims>"),

		AppendRule("<diaUseFragMassesForMl>", diaParameters...),

		AppendRule("<IncludeAmmonia>",
			"<IncludeWaterCross>False</IncludeWaterCross>",
			"<IncludeAmmoniaCross>False</IncludeAmmoniaCross>"),

		DeleteRule("<boxCarMode>"),
		DeleteRule("<writePeptidesForSpectrumFile>"),
		DeleteRule("<intensityPredictionsFile>"),
		DeleteRule("</intensityPredictionsFile>"),
		DeleteRule("<intensPred>"),
		DeleteRule("<intensPredModelReTrain>"),
		DeleteRule("<timsRearrangeSpectra>"),
		DeleteRule("<diaPeptidePaths>"),
		DeleteRule("</diaPeptidePaths>"),
		DeleteRule("<diaPrecursorFilterType>"),
		DeleteRule("<diaRtPrediction>"),
		DeleteRule("<diaRtPredictionSecondRound>"),
		DeleteRule("<ConnectedScore0>"),
		DeleteRule("<ConnectedScore1>"),
		DeleteRule("<ConnectedScore2>"),

		ReplaceRule("<intensityThresholdMs1>",
			"<intensityThresholdMs1Dda>0</intensityThresholdMs1Dda>",
			"<intensityThresholdMs1Dia>0</intensityThresholdMs1Dia>"),

		ReplaceRule("<diaMinProfileCorrelation>",
			"<diaMinPrecProfileCorrelation>0</diaMinPrecProfileCorrelation>",
			"<diaMinFragProfileCorrelation>0</diaMinFragProfileCorrelation>"),

		ReplaceRule("<diaMinPeaksForRecal>",
			"<diaMinPeaks>5</diaMinPeaks>"),

		ReplaceRule("<Connected>",
			"<UseIntensityPrediction>False</UseIntensityPrediction>",
			"<UseSequenceBasedModifier>False</UseSequenceBasedModifier>"),

		ReplaceRule("<minScore_Dipeptide>",
			"<minScoreDipeptide>40</minScoreDipeptide>"),

		ReplaceRule("<minScore_Monopeptide>",
			"<minScoreMonopeptide>0</minScoreMonopeptide>"),

		ReplaceRule("<minScore_PartialCross>",
			"<minScorePartialCross>10</minScorePartialCross>"),

		ReplaceRule("<diaLfqWeightedMedian>",
			"<diaLfqRatioType>0</diaLfqRatioType>"),

		SetValueRule("<maxQuantVersion>", "2.4.13.0", ""),
		SetValueRule("<fullMinMz>", "-1.79769313486232E+308", ""),
		SetValueRule("<fullMaxMz>", "1.79769313486232E+308", ""),

		// Only the reporter ion run type was renamed; other values share the tag.
		SetValueRule("<lcmsRunType>", "Reporter MS2", "Reporter ion MS2"),
	}
}

// diaParameters are the DIA settings introduced after <diaUseFragMassesForMl>.
var diaParameters = []string{
	"<diaMaxTrainInstances>0</diaMaxTrainInstances>",
	"<diaMaxFragmentCharge>0</diaMaxFragmentCharge>",
	"<diaAdaptiveMlScoring>False</diaAdaptiveMlScoring>",
	"<diaDynamicScoringMaxInstances>25000</diaDynamicScoringMaxInstances>",
	"<diaMaxPrecursorMz>0</diaMaxPrecursorMz>",
	"<diaHardRtFilter>False</diaHardRtFilter>",
	"<diaConvertLibraryCharge2Fragments>False</diaConvertLibraryCharge2Fragments>",
	"<diaChargeNormalizationLibrary>False</diaChargeNormalizationLibrary>",
	"<diaChargeNormalizationSample>False</diaChargeNormalizationSample>",
	"<diaDeleteIntermediateResults>False</diaDeleteIntermediateResults>",
	"<diaScoreWeightScanIndex>0</diaScoreWeightScanIndex>",
	"<diaScoreWeightScanValue>0</diaScoreWeightScanValue>",
	"<diaNumNonleadingMatches>0</diaNumNonleadingMatches>",
	"<diaUseDefaultFragmentModel>True</diaUseDefaultFragmentModel>",
	"<diaAltFragmentModelPath></diaAltFragmentModelPath>",
	"<diaUseDefaultRtModel>True</diaUseDefaultRtModel>",
	"<diaAltRtModelPath></diaAltRtModelPath>",
	"<diaUseDefaultCcsModel>True</diaUseDefaultCcsModel>",
	"<diaAltCcsModelPath></diaAltCcsModelPath>",
	"<diaBatchProcessing>False</diaBatchProcessing>",
	"<diaBatchSize>0</diaBatchSize>",
	"<diaFirstBatch>0</diaFirstBatch>",
	"<diaLastBatch>0</diaLastBatch>",
	"<diaOnlyPreprocess>False</diaOnlyPreprocess>",
	"<diaMultiplexQuantMethod>0</diaMultiplexQuantMethod>",
	"<diaOnlyPostprocess>False</diaOnlyPostprocess>",
	"<diaRequirePrecursor>False</diaRequirePrecursor>",
	"<diaFuturePeptides>False</diaFuturePeptides>",
	"<diaOverrideRtWithPrediction>False</diaOverrideRtWithPrediction>",
	"<diaMaxModifications>0</diaMaxModifications>",
	"<diaMaxPositionings>0</diaMaxPositionings>",
	"<diaUseProbScore>False</diaUseProbScore>",
	"<diaProbScoreP>0</diaProbScoreP>",
	"<diaProbScoreG>0</diaProbScoreG>",
	"<diaProbScoreStep>0</diaProbScoreStep>",
	"<isM2FragTypeOverride>False</isM2FragTypeOverride>",
	"<ms2FragTypeOverride>0</ms2FragTypeOverride>",
	"<classicLfqForSingleShots>True</classicLfqForSingleShots>",
	"<sequenceBasedModifier>False</sequenceBasedModifier>",
	"<diaRtFromSamplesForExport>False</diaRtFromSamplesForExport>",
	"<diaCcsFromSamplesForExport>False</diaCcsFromSamplesForExport>",
	"<diaLibraryExport>0</diaLibraryExport>",
	"<diaUseApexWeightsForPtmLoc>False</diaUseApexWeightsForPtmLoc>",
	"<diaSecondScoreForMultiplex>False</diaSecondScoreForMultiplex>",
}
