// Package mods reads the modification settings of a MaxQuant parameter file.
//
// # File Format
//
// Only the parts of the file that describe modifications are decoded:
//
//	<MaxQuantParams>
//	  <restrictMods>
//	    <string>Oxidation (M)</string>
//	  </restrictMods>
//	  <parameterGroups>
//	    <parameterGroup>
//	      <fixedModifications>
//	        <string>Carbamidomethyl (C)</string>
//	      </fixedModifications>
//	      <variableModifications>
//	        <string>Oxidation (M)</string>
//	      </variableModifications>
//	      <variableModificationsFirstSearch>
//	        <string>Acetyl (Protein N-term)</string>
//	      </variableModificationsFirstSearch>
//	      <isobaricLabels>
//	        <IsobaricLabelInfo>
//	          <internalLabel>TMT6plex-Lys126</internalLabel>
//	          <terminalLabel>TMT6plex-Nter126</terminalLabel>
//	        </IsobaricLabelInfo>
//	      </isobaricLabels>
//	    </parameterGroup>
//	  </parameterGroups>
//	</MaxQuantParams>
//
// Everything else in the file is ignored.
//
// # Usage
//
//	pf, err := mods.Parse(content, path)
//	if err != nil {
//	    return err
//	}
//	summary, err := mods.Summarize(pf, mods.Options{})
//	if err != nil {
//	    return err // mods.ErrNoParameterGroups
//	}
//	summary.Write(os.Stdout)
//
// Summarize never touches the file system and returns the same Summary for
// the same input.
package mods
