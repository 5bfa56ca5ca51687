package reexport

import "github.com/woozymasta/cfgbundle/pkg/config"

// DefaultConfigFiles is the list of config files exported when Options.ConfigFiles is nil.
var DefaultConfigFiles = []config.ConfigFile{
	{Path: "biome.jsonc", ExportName: "./biome.jsonc"},
	{Path: "dprint.json", ExportName: "./dprint.json"},
	{Path: "eslint.config.mjs", ExportName: "./eslint.config.mjs"},
	{Path: "knip.json", ExportName: "./knip.json"},
	{Path: "lefthook.yml", ExportName: "./lefthook.yml"},
	{Path: ".oxlintrc.json", ExportName: "./oxlintrc.json"},
	{Path: "node-modules-inspector.config.ts", ExportName: "./node-modules-inspector.config.ts"},
	{Path: "railway.json", ExportName: "./railway.json"},
	{Path: ".release-it.json", ExportName: "./release-it.json"},
	{Path: "taze.config.ts", ExportName: "./taze.config.ts"},
	{Path: "tsconfig.json", ExportName: "./tsconfig.json"},
	{Path: "tsconfig.client.json", ExportName: "./tsconfig.client.json"},
	{Path: "tsdown.config.ts", ExportName: "./tsdown.config.ts"},
	{Path: "turbo.json", ExportName: "./turbo.json"},
	{Path: "uno.config.ts", ExportName: "./uno.config.ts"},
	{Path: "vite.config.ts", ExportName: "./vite.config.ts"},
	{Path: "vitest.config.ts", ExportName: "./vitest.config.ts"},
	{Path: "presetWrikka/index.ts", ExportName: "./wrikka-uno-preset.ts"},
}
