// Package classifier はリポジトリ内のファイルパスから問題のメタ情報を推定する。
// ネットワークやDBには一切触れない純粋関数だけを置く。
package classifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result は1ファイルの分類結果。該当なしの項目は空文字
type Result struct {
	IsCodeFile bool
	Platform   string
	Difficulty string
	Title      string
	Language   string
}

// コードファイルとして扱う拡張子
var codeExtensions = map[string]struct{}{
	"cpp": {}, "cc": {}, "cxx": {}, "c": {}, "py": {}, "java": {}, "js": {}, "ts": {},
	"go": {}, "rs": {}, "rb": {}, "php": {}, "cs": {}, "kt": {}, "swift": {},
}

// 拡張子 -> 言語名。ここに無いコード拡張子は拡張子そのものを言語名とする
var languageByExtension = map[string]string{
	"cpp":   "cpp",
	"cc":    "cpp",
	"cxx":   "cpp",
	"c":     "c",
	"py":    "python",
	"java":  "java",
	"js":    "javascript",
	"ts":    "typescript",
	"go":    "go",
	"rs":    "rust",
	"rb":    "ruby",
	"php":   "php",
	"cs":    "csharp",
	"kt":    "kotlin",
	"swift": "swift",
}

type platformRule struct {
	keywords []string
	name     string
}

// 上から順に評価し、最初に一致したものを採用する
var platformRules = []platformRule{
	{keywords: []string{"leetcode"}, name: "leetcode"},
	{keywords: []string{"gfg", "geeksforgeeks"}, name: "gfg"},
	{keywords: []string{"codeforces"}, name: "codeforces"},
	{keywords: []string{"codechef"}, name: "codechef"},
	{keywords: []string{"atcoder"}, name: "atcoder"},
	{keywords: []string{"hackerrank"}, name: "hackerrank"},
}

// 難易度キーワード。複数該当する場合はこの順で優先する
var difficulties = []string{"easy", "medium", "hard"}

// Classify はパスとファイル名から問題のメタ情報を返す
func Classify(path, filename string) Result {
	ext := extension(filename)
	_, isCode := codeExtensions[ext]

	res := Result{
		IsCodeFile: isCode,
		Platform:   detectPlatform(path),
		Difficulty: detectDifficulty(path),
		Title:      Title(filename),
	}
	if isCode {
		res.Language = ext
		if lang, ok := languageByExtension[ext]; ok {
			res.Language = lang
		}
	}
	return res
}

// IsCodeFile は拡張子が許可リストに含まれるか判定する
func IsCodeFile(filename string) bool {
	_, ok := codeExtensions[extension(filename)]
	return ok
}

// FileName はパスの最後の要素を返す。区切りは / と \ の両方
func FileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Title はファイル名から表示用タイトルを作る
//
//	two-sum.py        -> Two Sum
//	mergeTwoLists.cpp -> Merge Two Lists
//	0001.two-sum.py   -> 0001.two Sum
func Title(filename string) string {
	base := filename
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = splitCamelCase(base)

	// 各単語の先頭1文字だけを大文字にする (3sum は 3sum のまま)
	caser := cases.Upper(language.Und)
	words := strings.Fields(base)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = caser.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}

func extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

func detectPlatform(path string) string {
	lower := strings.ToLower(path)
	for _, rule := range platformRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return ""
}

// detectDifficulty は /easy/ や \easy\ のように区切り文字で挟まれたセグメントだけを見る。
// 先頭セグメントとファイル名は対象外。区切り文字の混在 (/easy\) は認めない
func detectDifficulty(path string) string {
	lower := strings.ToLower(path)
	for _, kw := range difficulties {
		if strings.Contains(lower, "/"+kw+"/") || strings.Contains(lower, `\`+kw+`\`) {
			return kw
		}
	}
	return ""
}

// splitCamelCase は小文字の直後に大文字が来る位置に空白を入れる
func splitCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
