package assistant

import "fmt"

func similarPrompt(in SimilarInput) string {
	return fmt.Sprintf(`You are an expert in exoplanetary science. Given the following information about an exoplanet, identify up to 3 other known exoplanets with similar characteristics and explain your reasoning.

Exoplanet Name: %s
Planet Radius (Earth radii): %g
Orbital Period (days): %g
Stellar Temperature (Kelvin): %g

Respond with a JSON object only:
{"similarExoplanets": ["name", ...], "reasoning": "why these exoplanets are similar"}`,
		in.PlanetName, in.PlanetRadius, in.OrbitalPeriod, in.StellarTemperature)
}

func validationPrompt(suggestions string) string {
	return fmt.Sprintf(`You are an expert in summarizing validation suggestions for exoplanet candidates that have been identified as false positives.

Given the following validation suggestions, provide a concise summary of the key steps for further investigation.

Validation Suggestions:
%s

Respond with a JSON object only:
{"summary": "concise summary"}`, suggestions)
}
