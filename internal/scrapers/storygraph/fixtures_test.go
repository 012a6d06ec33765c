package storygraph

const bookPageHtml = `<html><body>
<div class="book-cover"><img src="https://cdn.example.com/dune.jpg"></div>
<h3 class="font-serif font-bold text-2xl md:w-11/12">Dune
  <a href="/authors/frank-herbert">Frank Herbert</a>
  <a href="/series/dune">Dune #1</a>
</h3>
<p class="text-sm font-light text-darkestGrey dark:text-grey mt-1">896 pages • <span>hardcover</span> • <span>first pub 1965</span></p>
<div class="book-page-tag-section"><span>science fiction</span><span> adventurous </span></div>
<script>
$('.read-more-btn').on('click', function() {
  $('.blurb-pane').html('<div class=\"trix-content\">Set on the desert planet Arrakis.<br>A stunning blend of adventure.<\/div>');
});
</script>
</body></html>`

const bookPageStructuredAuthorHtml = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Book","name":"Dune","author":[{"@type":"Person","name":"Frank Herbert","url":"https://example.com/frank"}]}</script>
</head><body>
<h3 class="font-serif font-bold text-2xl md:w-11/12">Dune</h3>
<p class="text-sm font-light">896 pages</p>
</body></html>`

const communityReviewsHtml = `<html><body>
<span class="average-star-rating"> 4.26 </span>
</body></html>`

const contentWarningsHtml = `<html><body>
<div class="standard-pane">Author submitted</div>
<div class="standard-pane">
  <p>Graphic</p>
  <div>Violence (12)</div>
  <div>Death (3)</div>
  <p>Moderate</p>
  <div>Drug use (2)</div>
  <p>Minor</p>
  <div>Suicide (1)</div>
  <div>not a warning</div>
</div>
</body></html>`

const searchResultsHtml = `<html><body>
<div class="book-title-author-and-series w-11/12">
  <h3><a href="/books/abc-123">Dune</a></h3>
  <p><a href="/series/1">Dune #1</a> <a href="/authors/frank-herbert">Frank Herbert</a></p>
</div>
<div class="book-title-author-and-series w-11/12"><h3>Untitled</h3></div>
<div class="book-title-author-and-series"><a href="/books/ignored">Ignored</a></div>
</body></html>`

const userListHtml = `<html><body>
<div class="book-title-author-and-series"><a href="/books/abc-123">Dune</a></div>
<div class="book-title-author-and-series"><a href="/books/def-456">Emma</a></div>
<div class="book-title-author-and-series"><a href="/books/abc-123">Dune</a></div>
</body></html>`

const journalPageHtml = `<html><body>
<div class="mb-7">
  <p class="font-semibold text-sm md:text-base font-semibold"><a href="/books/abc-123">Dune</a></p>
  <p class="font-semibold text-xs md:text-sm">12 June 2024
    <span>edit</span>
  </p>
  <span class="inline-flex items-center">Finished</span>
  <div class="text-teal-500"> 100 % </div>
  <p class="clear-both text-xs">1,200 pages read (1,200 pages out of 1,250)</p>
  <div class="trix-content"><div>Loved it.</div><div>Will <b>reread</b>.</div></div>
</div>
<div class="mb-7"><p>Reading challenge banner</p></div>
<div class="mb-7">
  <p class="font-semibold text-sm md:text-base"><a href="/books/abc-123">Dune</a></p>
  <p class="font-semibold text-xs md:text-sm">1 May 2024</p>
  <span class="inline-flex">Started reading</span>
</div>
</body></html>`

const emptyJournalPageHtml = `<html><body><p>No journal entries yet.</p></body></html>`

const bookJournalHtml = `<html><body>
<span class="journal-entry-panes">
  <div class="grid grid-cols-4">
    <p class="font-semibold">9 March 2024</p>
    <div class="text-teal-500">45%</div>
    <p class="clear-both">120 pages read (200 pages out of 444)</p>
  </div>
  <div class="grid grid-cols-4">
    <p class="font-semibold">3 March 2024</p>
    <span class="inline-flex">Started reading</span>
  </div>
</span>
</body></html>`

const readInstanceFormHtml = `<html><body><form>
<select id="read_instance_start_day"><option value="1">1</option><option value="5" selected>5</option></select>
<select id="read_instance_start_month"><option value="3" selected>March</option></select>
<select id="read_instance_start_year"><option value="2024" selected>2024</option></select>
<select id="read_instance_day"><option value="" selected></option></select>
<select id="read_instance_month"><option value="4" selected>April</option></select>
<select id="read_instance_year"><option value="2024" selected>2024</option></select>
</form></body></html>`

const journalEntryFormHtml = `<html><body><form>
<select id="journal_entry_started_at_day"><option value="9" selected>9</option></select>
<select id="journal_entry_started_at_month"><option value="1" selected>January</option></select>
<select id="journal_entry_started_at_year"><option value="2023" selected>2023</option></select>
<select id="journal_entry_finished_at_day"><option value="28" selected>28</option></select>
<select id="journal_entry_finished_at_month"><option value="2" selected>February</option></select>
<select id="journal_entry_finished_at_year"><option value="2023" selected>2023</option></select>
</form></body></html>`

const profileHtml = `<html><body>
<div id="profile-heading-pane" data-user-id="u-99"><h1>reader</h1></div>
</body></html>`

const summaryHtml = `<turbo-stream action="update" target="personalized-preview">
<template><p> A tense desert epic you will probably love. </p></template>
</turbo-stream>`
