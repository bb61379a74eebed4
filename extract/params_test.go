package extract

import (
	"reflect"
	"testing"

	"github.com/csimoes1/tldr-code/summary"
)

func Test_ParseParamList_GoNameType(t *testing.T) {
	params := parseParamList("(a int, b map[string]int, xs ...string)", ParamNameType)
	want := []summary.Param{
		{Name: "a", Type: "int"},
		{Name: "b", Type: "map[string]int"},
		{Name: "xs", Type: "...string"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_GoGroupedNames(t *testing.T) {
	params := parseParamList("(a, b int)", ParamNameType)
	want := []summary.Param{
		{Name: "a"},
		{Name: "b", Type: "int"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_CTypeName(t *testing.T) {
	params := parseParamList("(int argc, char **argv)", ParamTypeName)
	want := []summary.Param{
		{Name: "argc", Type: "int"},
		{Name: "argv", Type: "char **"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_CVoid(t *testing.T) {
	if params := parseParamList("(void)", ParamTypeName); len(params) != 0 {
		t.Errorf("void parameter list should be empty, got %+v", params)
	}
}

func Test_ParseParamList_UnnamedTypeParameter(t *testing.T) {
	params := parseParamList("(int)", ParamTypeName)
	want := []summary.Param{{Name: "_", Type: "int"}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_PythonDefaultsAndSelf(t *testing.T) {
	params := parseParamList("(self, name: str = \"x\", count=1)", ParamNameColonType)
	want := []summary.Param{
		{Name: "self"},
		{Name: "name", Type: "str"},
		{Name: "count"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_TypeScriptGenerics(t *testing.T) {
	params := parseParamList("(items: Map<string, number>, cb: (x: number) => void)", ParamNameColonType)
	want := []summary.Param{
		{Name: "items", Type: "Map<string, number>"},
		{Name: "cb", Type: "(x: number) => void"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_SwiftArgumentLabel(t *testing.T) {
	params := parseParamList("(with value: Int)", ParamNameColonType)
	want := []summary.Param{{Name: "value", Type: "Int"}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_MultilineObjectType(t *testing.T) {
	params := parseParamList("(options: {\n  retries: number\n})", ParamNameColonType)
	want := []summary.Param{{Name: "options", Type: "{ retries: number }"}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_MultilineCDeclaration(t *testing.T) {
	params := parseParamList("(const struct config\n\t*cfg)", ParamTypeName)
	want := []summary.Param{{Name: "cfg", Type: "const struct config *"}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_JavaScriptNamesOnly(t *testing.T) {
	params := parseParamList("(a, b = 1, ...rest)", ParamNameOnly)
	want := []summary.Param{
		{Name: "a"},
		{Name: "b"},
		{Name: "...rest"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("got %+v, want %+v", params, want)
	}
}

func Test_ParseParamList_Empty(t *testing.T) {
	if params := parseParamList("()", ParamNameType); len(params) != 0 {
		t.Errorf("expected no params, got %+v", params)
	}
}

func Test_SplitTopLevel_NestedCommas(t *testing.T) {
	parts := splitTopLevel("pair<int, int> p, vector<string> names")
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %v", parts)
	}
}

func Test_ReceiverTypeName(t *testing.T) {
	cases := map[string]string{
		"(s *Server)":   "Server",
		"(c Client)":    "Client",
		"(s *Set[T])":   "Set",
		"(*Registry)":   "Registry",
		"":              "",
	}
	for input, want := range cases {
		if got := receiverTypeName(input); got != want {
			t.Errorf("receiverTypeName(%q) = %q, want %q", input, got, want)
		}
	}
}
