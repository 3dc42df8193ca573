package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	Output         string `yaml:"output"`
	PageWorkers    int    `yaml:"page_workers"`
	ChapterWorkers int    `yaml:"chapter_workers"`
	KeepFolders    bool   `yaml:"keep_folders"`
	Debug          bool   `yaml:"debug"`
	SkipBroken     bool   `yaml:"skip_broken"`

	UserAgent string `yaml:"user_agent"`
	BaseURL   string `yaml:"base_url"`

	// YearMin filters bare numbers that look like release years out of
	// chapter detection. Negative disables the filter.
	YearMin        int    `yaml:"year_min"`
	ExclusionsFile string `yaml:"exclusions_file"`

	DefaultSeries string `yaml:"default_series"`
	DefaultRange  string `yaml:"default_range"`
	DefaultList   string `yaml:"default_list"`
}

type Options struct {
	IgnoreConfig   bool
	Debug          bool
	Username       string
	Password       string
	Output         string
	PageWorkers    int
	ChapterWorkers int
	KeepFolders    bool
	SkipBroken     bool
	UserAgent      string
	BaseURL        string
	YearMin        int
	ExclusionsFile string
	DefaultSeries  string
	DefaultRange   string
	DefaultList    string
}

func DefaultConfig() *Config {
	return &Config{
		Username:       "",
		Password:       "",
		Output:         ".",
		PageWorkers:    5,
		ChapterWorkers: 2,
		KeepFolders:    false,
		Debug:          false,
		SkipBroken:     false,
		UserAgent:      "",
		BaseURL:        "",
		YearMin:        1900,
		ExclusionsFile: "",
		DefaultSeries:  "",
		DefaultRange:   "",
		DefaultList:    "",
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `madodl config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Username != "" {
		c.Username = o.Username
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.PageWorkers != 0 {
		c.PageWorkers = o.PageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.YearMin != 0 {
		c.YearMin = o.YearMin
	}
	if o.ExclusionsFile != "" {
		c.ExclusionsFile = o.ExclusionsFile
	}
	if o.DefaultSeries != "" {
		c.DefaultSeries = o.DefaultSeries
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.PageWorkers == 0 {
		c.PageWorkers = 5
	}
	if c.ChapterWorkers == 0 {
		c.ChapterWorkers = 2
	}
	if c.YearMin == 0 {
		c.YearMin = 1900
	}
}

func (c *Config) Print() {
	if c.Username != "" {
		fmt.Printf(" -username: %s\n", c.Username)
	}
	if c.Password != "" {
		fmt.Printf(" -password: ********\n")
	}
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -page_workers: %d\n", c.PageWorkers)
	fmt.Printf(" -chapter_workers: %d\n", c.ChapterWorkers)
	if c.KeepFolders {
		fmt.Printf(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.SkipBroken {
		fmt.Printf(" -skip_broken: %t\n", c.SkipBroken)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.BaseURL != "" {
		fmt.Printf(" -base_url: %s\n", c.BaseURL)
	}
	fmt.Printf(" -year_min: %d\n", c.YearMin)
	if c.ExclusionsFile != "" {
		fmt.Printf(" -exclusions_file: %s\n", c.ExclusionsFile)
	}
	if c.DefaultSeries != "" {
		fmt.Printf(" -series: %s\n", c.DefaultSeries)
	}
	if c.DefaultRange != "" {
		fmt.Printf(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Printf(" -list: %s\n", c.DefaultList)
	}
}
