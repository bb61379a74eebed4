package extract

import "github.com/csimoes1/tldr-code/summary"

// defaultProfiles returns the extraction profile for every supported
// grammar. Each profile is a declarative table over node kinds; the walker
// in profile.go is the only traversal code.
func defaultProfiles() map[string]*Profile {
	profiles := map[string]*Profile{
		"python":     pythonProfile(),
		"javascript": javascriptProfile("javascript"),
		"typescript": typescriptProfile("typescript"),
		"tsx":        typescriptProfile("tsx"),
		"java":       javaProfile(),
		"c":          cProfile(),
		"cpp":        cppProfile(),
		"csharp":     csharpProfile(),
		"go":         goProfile(),
		"swift":      swiftProfile(),
		"objc":       objcProfile(),
	}
	return profiles
}

func pythonProfile() *Profile {
	return &Profile{
		Language:   "python",
		ParamStyle: ParamNameColonType,
		Rules: map[string][]Rule{
			"function_definition": {{
				Kind:       summary.KindFunction,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				ResultPath: []string{"return_type"},
				PushScope:  true,
			}},
			"class_definition": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
		},
	}
}

func javascriptProfile(language string) *Profile {
	return &Profile{
		Language:   language,
		ParamStyle: ParamNameOnly,
		Rules: map[string][]Rule{
			"function_declaration": {{
				Kind:       summary.KindFunction,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				PushScope:  true,
			}},
			"generator_function_declaration": {{
				Kind:       summary.KindFunction,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				PushScope:  true,
			}},
			"class_declaration": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"method_definition": {{
				Kind:       summary.KindMethod,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
			}},
			// Arrow and function expressions assigned to a binding count as
			// named functions.
			"variable_declarator": {
				{
					Kind:       summary.KindFunction,
					NamePath:   []string{"name"},
					ParamsPath: []string{"value", "parameters"},
					WhenField:  map[string]string{"value": "arrow_function"},
				},
				{
					Kind:       summary.KindFunction,
					NamePath:   []string{"name"},
					ParamsPath: []string{"value", "parameters"},
					WhenField:  map[string]string{"value": "function_expression"},
				},
			},
		},
	}
}

func typescriptProfile(language string) *Profile {
	profile := javascriptProfile(language)
	profile.ParamStyle = ParamNameColonType

	profile.Rules["function_declaration"] = []Rule{{
		Kind:       summary.KindFunction,
		NamePath:   []string{"name"},
		ParamsPath: []string{"parameters"},
		ResultPath: []string{"return_type"},
		PushScope:  true,
	}}
	profile.Rules["method_definition"] = []Rule{{
		Kind:       summary.KindMethod,
		NamePath:   []string{"name"},
		ParamsPath: []string{"parameters"},
		ResultPath: []string{"return_type"},
	}}
	profile.Rules["interface_declaration"] = []Rule{{
		Kind:      summary.KindInterface,
		NamePath:  []string{"name"},
		PushScope: true,
	}}
	profile.Rules["method_signature"] = []Rule{{
		Kind:       summary.KindMethod,
		NamePath:   []string{"name"},
		ParamsPath: []string{"parameters"},
		ResultPath: []string{"return_type"},
	}}
	profile.Rules["abstract_method_signature"] = []Rule{{
		Kind:       summary.KindMethod,
		NamePath:   []string{"name"},
		ParamsPath: []string{"parameters"},
		ResultPath: []string{"return_type"},
	}}
	return profile
}

func javaProfile() *Profile {
	return &Profile{
		Language:   "java",
		ParamStyle: ParamTypeName,
		Rules: map[string][]Rule{
			"class_declaration": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"interface_declaration": {{
				Kind:      summary.KindInterface,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"enum_declaration": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"record_declaration": {{
				Kind:       summary.KindClass,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				PushScope:  true,
			}},
			"method_declaration": {{
				Kind:       summary.KindMethod,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				ResultPath: []string{"type"},
			}},
			"constructor_declaration": {{
				Kind:       summary.KindMethod,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
			}},
		},
	}
}

func cProfile() *Profile {
	return &Profile{
		Language:   "c",
		ParamStyle: ParamTypeName,
		Rules: map[string][]Rule{
			"function_definition": {{
				Kind:       summary.KindFunction,
				NamePath:   []string{"declarator", "declarator"},
				ParamsPath: []string{"declarator", "parameters"},
				ResultPath: []string{"type"},
			}},
			"struct_specifier": {{
				Kind:         summary.KindStruct,
				NamePath:     []string{"name"},
				RequireField: "body",
				PushScope:    true,
			}},
		},
	}
}

func cppProfile() *Profile {
	profile := cProfile()
	profile.Language = "cpp"
	profile.Rules["class_specifier"] = []Rule{{
		Kind:         summary.KindClass,
		NamePath:     []string{"name"},
		RequireField: "body",
		PushScope:    true,
	}}
	// Namespaces qualify nested names but are not class-like: functions
	// inside them stay functions.
	profile.Rules["namespace_definition"] = []Rule{{
		Kind:      summary.KindFunction,
		NamePath:  []string{"name"},
		ScopeOnly: true,
		PushScope: true,
	}}
	return profile
}

func csharpProfile() *Profile {
	return &Profile{
		Language:   "csharp",
		ParamStyle: ParamTypeName,
		Rules: map[string][]Rule{
			"class_declaration": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"struct_declaration": {{
				Kind:      summary.KindStruct,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"interface_declaration": {{
				Kind:      summary.KindInterface,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"method_declaration": {{
				Kind:       summary.KindMethod,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				ResultPath: []string{"returns"},
			}},
			"constructor_declaration": {{
				Kind:       summary.KindMethod,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
			}},
		},
	}
}

func goProfile() *Profile {
	return &Profile{
		Language:   "go",
		ParamStyle: ParamNameType,
		Rules: map[string][]Rule{
			"function_declaration": {{
				Kind:       summary.KindFunction,
				NamePath:   []string{"name"},
				ParamsPath: []string{"parameters"},
				ResultPath: []string{"result"},
				PushScope:  true,
			}},
			"method_declaration": {{
				Kind:         summary.KindMethod,
				NamePath:     []string{"name"},
				ParamsPath:   []string{"parameters"},
				ResultPath:   []string{"result"},
				ReceiverPath: []string{"receiver"},
			}},
			"type_spec": {
				{
					Kind:      summary.KindStruct,
					NamePath:  []string{"name"},
					WhenField: map[string]string{"type": "struct_type"},
					PushScope: true,
				},
				{
					Kind:      summary.KindInterface,
					NamePath:  []string{"name"},
					WhenField: map[string]string{"type": "interface_type"},
					PushScope: true,
				},
			},
		},
	}
}

func swiftProfile() *Profile {
	return &Profile{
		Language:   "swift",
		ParamStyle: ParamNameColonType,
		Rules: map[string][]Rule{
			"function_declaration": {{
				Kind:          summary.KindFunction,
				NamePath:      []string{"name"},
				ParamNodeKind: "parameter",
				PushScope:     true,
			}},
			// The Swift grammar uses class_declaration for both classes and
			// structs; both are reported as class.
			"class_declaration": {{
				Kind:      summary.KindClass,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
			"protocol_declaration": {{
				Kind:      summary.KindProtocol,
				NamePath:  []string{"name"},
				PushScope: true,
			}},
		},
	}
}

func objcProfile() *Profile {
	profile := cProfile()
	profile.Language = "objc"
	profile.Rules["class_interface"] = []Rule{{
		Kind:      summary.KindClass,
		NamePath:  []string{"name"},
		PushScope: true,
	}}
	profile.Rules["class_implementation"] = []Rule{{
		Kind:      summary.KindClass,
		NamePath:  []string{"name"},
		PushScope: true,
	}}
	profile.Rules["protocol_declaration"] = []Rule{{
		Kind:      summary.KindProtocol,
		NamePath:  []string{"name"},
		PushScope: true,
	}}
	// Method names are the selector text ("doWork:withValue:"); parameter
	// structure is left to the selector, which is how Objective-C reads.
	profile.Rules["method_definition"] = []Rule{{
		Kind:     summary.KindMethod,
		NamePath: []string{"selector"},
	}}
	profile.Rules["method_declaration"] = []Rule{{
		Kind:     summary.KindMethod,
		NamePath: []string{"selector"},
	}}
	return profile
}
