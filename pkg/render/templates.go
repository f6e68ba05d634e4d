package render

// The template families below are fixed text with project values
// substituted in. They deliberately mirror what an operator would
// otherwise paste into the target project by hand.
var templateSources = map[Family]string{
	FamilyGemfile:   gemfileTemplate,
	FamilyAppfile:   appfileTemplate,
	FamilyMatchfile: matchfileTemplate,
	FamilyFastfile:  fastfileTemplate,
	FamilyWorkflow:  workflowTemplate,
}

const gemfileTemplate = `source "https://rubygems.org"

gem "fastlane"
`

const appfileTemplate = `app_identifier("[[ .BundleID ]]")
[[- if .AppleID ]]
apple_id("[[ .AppleID ]]")
[[- end ]]
team_id("[[ .TeamID ]]")
itc_team_id("[[ .TeamID ]]")
`

const matchfileTemplate = `git_url("[[ .MatchRepo ]]")
storage_mode("git")
type("appstore")
app_identifier(["[[ .BundleID ]]"])
readonly(true)
`

const fastfileTemplate = `default_platform(:ios)

platform :ios do
  desc "Run the test suite"
  lane :test do
    run_tests(scheme: "[[ .Scheme ]]")
  end

  desc "Sign, build, and upload to the distribution endpoint"
  lane :release do
    app_store_connect_api_key(
      key_id: ENV["APP_STORE_CONNECT_KEY_ID"],
      issuer_id: ENV["APP_STORE_CONNECT_ISSUER_ID"],
      key_content: ENV["APP_STORE_CONNECT_API_KEY"],
      is_key_content_base64: true
    )
    match(type: "appstore", readonly: true)
    increment_build_number(build_number: ENV["BUILD_NUMBER"])
    update_code_signing_settings(
      use_automatic_signing: false,
      team_id: "[[ .TeamID ]]",
      profile_name: "match AppStore [[ .BundleID ]]"
    )
    build_app(scheme: "[[ .Scheme ]]")
    upload_to_testflight
    clean_build_artifacts
  end
end
`

const workflowTemplate = `name: [[ .Scheme | lower ]]-release

on:
  push:
    branches:
      - [[ .DefaultBranch ]]
  pull_request:
    branches:
      - [[ .DefaultBranch ]]
  workflow_dispatch:
    inputs:
      stage:
        description: Stage to run
        required: true
        default: test
        type: choice
        options:
          - test
          - deploy
[[- if .Schedule ]]
  schedule:
    - cron: "[[ .Schedule ]]"
[[- end ]]

concurrency:
  group: ${{ github.workflow }}-${{ github.ref }}
  cancel-in-progress: true

jobs:
  test:
    if: github.event_name == 'pull_request' || github.event_name == 'schedule' || (github.event_name == 'workflow_dispatch' && inputs.stage == 'test')
    runs-on: macos-latest
    steps:
      - uses: actions/checkout@v4
      - uses: ruby/setup-ruby@v1
        with:
          bundler-cache: true
      - name: Run tests
        run: bundle exec fastlane test

  deploy:
    if: github.event_name == 'push' || (github.event_name == 'workflow_dispatch' && inputs.stage == 'deploy')
    runs-on: macos-latest
    steps:
      - uses: actions/checkout@v4
      - uses: webfactory/ssh-agent@v0.9.0
        with:
          ssh-private-key: ${{ secrets.MATCH_DEPLOY_KEY }}
      - uses: ruby/setup-ruby@v1
        with:
          bundler-cache: true
      - name: Release
        run: bundle exec fastlane release
        env:
          MATCH_PASSWORD: ${{ secrets.MATCH_PASSWORD }}
          APP_STORE_CONNECT_API_KEY: ${{ secrets.APP_STORE_CONNECT_API_KEY }}
          APP_STORE_CONNECT_KEY_ID: ${{ secrets.APP_STORE_CONNECT_KEY_ID }}
          APP_STORE_CONNECT_ISSUER_ID: ${{ secrets.APP_STORE_CONNECT_ISSUER_ID }}
          BUILD_NUMBER: ${{ github.run_number }}
`
