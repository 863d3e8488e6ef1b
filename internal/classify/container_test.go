package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/higher-kinded-j/opticgen/internal/model"
)

func ref(name string, args ...*model.TypeRef) *model.TypeRef {
	return &model.TypeRef{Name: name, Args: args}
}

func named(pkg, name string) *model.TypeRef {
	return &model.TypeRef{PkgPath: pkg, Name: name}
}

func TestContainer(ttt *testing.T) {
	str := ref("string")
	user := named("example.com/app/domain", "User")

	tests := []struct {
		name string
		in   *model.TypeRef
		want *model.ContainerType
	}{
		{
			name: "list of named type",
			in:   ref(model.FamilyList, user),
			want: &model.ContainerType{Kind: model.ContainerList, Elem: user},
		},
		{
			name: "set of string",
			in:   ref(model.FamilySet, str),
			want: &model.ContainerType{Kind: model.ContainerSet, Elem: str},
		},
		{
			name: "map of string to named type",
			in:   ref(model.FamilyMap, str, user),
			want: &model.ContainerType{Kind: model.ContainerMap, Key: str, Elem: user},
		},
		{
			name: "option of named type",
			in:   ref(model.FamilyOption, user),
			want: &model.ContainerType{Kind: model.ContainerOption, Elem: user},
		},
		{
			name: "array of string",
			in:   &model.TypeRef{Name: model.FamilyArray, Args: []*model.TypeRef{str}, ArrayLen: 4},
			want: &model.ContainerType{Kind: model.ContainerArray, Elem: str, Len: 4},
		},
		{
			name: "raw list yields nothing",
			in:   ref(model.FamilyList),
			want: nil,
		},
		{
			name: "raw map with one argument yields nothing",
			in:   ref(model.FamilyMap, str),
			want: nil,
		},
		{
			name: "nil argument yields nothing",
			in:   ref(model.FamilyOption, nil),
			want: nil,
		},
		{
			name: "user type named List is not a container",
			in:   &model.TypeRef{PkgPath: "example.com/app/domain", Name: model.FamilyList, Args: []*model.TypeRef{str}},
			want: nil,
		},
		{
			name: "plain named type",
			in:   user,
			want: nil,
		},
		{
			name: "nil reference",
			in:   nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Container(tt.in)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want.Kind, got.Kind)
			require.Equal(t, tt.want.Kind == model.ContainerMap, got.IsMap())
			require.True(t, tt.want.Elem.Equal(got.Elem))
			require.True(t, tt.want.Key.Equal(got.Key))
			require.Equal(t, tt.want.Len, got.Len)
		})
	}
}
